//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"mint-bot/domain"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IChainClient is the two-step view of a mint on chain.
// Submit and Await fail independently.
type IChainClient interface {
	Submit(ctx context.Context, req domain.MintRequest) (domain.PendingMint, error)
	Await(ctx context.Context, pending domain.PendingMint) (domain.Receipt, error)
}

// IMinter submits a mint and blocks until it is included.
type IMinter interface {
	Mint(ctx context.Context, req domain.MintRequest) (domain.Receipt, error)
}

// IMessenger sends a text back to a chat.
type IMessenger interface {
	Reply(ctx context.Context, chatID int64, replyTo int, text string) error
}
