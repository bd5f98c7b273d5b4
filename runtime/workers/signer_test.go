package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mint-bot/domain"
	"mint-bot/errors"
	"mint-bot/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const wallet = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

func startSigner(t *testing.T, w *SignerWorker) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestSignerWorker_SerializesSubmissions(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	chain := mocks.NewMockIChainClient(ctrl)

	const n = 8
	var inFlight, maxInFlight atomic.Int32
	var nonce atomic.Uint64
	var awaiting atomic.Int32
	allAwaiting := make(chan struct{})

	chain.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.MintRequest) (domain.PendingMint, error) {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				seen := maxInFlight.Load()
				if current <= seen || maxInFlight.CompareAndSwap(seen, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return domain.PendingMint{Request: r, Nonce: nonce.Add(1) - 1}, nil
		}).
		Times(n)

	// Every Await blocks until all of them are running at once:
	// this only completes if inclusion waits are not serialized.
	chain.EXPECT().
		Await(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domain.PendingMint) (domain.Receipt, error) {
			if awaiting.Add(1) == n {
				close(allAwaiting)
			}
			select {
			case <-allAwaiting:
			case <-time.After(2 * time.Second):
				return domain.Receipt{}, fmt.Errorf("awaits were serialized")
			}
			return domain.Receipt{TxHash: fmt.Sprintf("0x%d", p.Nonce)}, nil
		}).
		Times(n)

	w := NewSignerWorker(log, chain, n)
	startSigner(t, w)

	mint, err := domain.NewMintRequest(wallet, 1)
	req.NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	hashes := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := w.Mint(context.Background(), mint)
			errs <- err
			hashes <- receipt.TxHash
		}()
	}
	wg.Wait()
	close(errs)
	close(hashes)

	for err := range errs {
		req.NoError(err)
	}
	seen := map[string]bool{}
	for h := range hashes {
		seen[h] = true
	}
	req.Len(seen, n, "every submission must get its own nonce")
	req.Equal(int32(1), maxInFlight.Load())
}

func TestSignerWorker_SubmitErrorSkipsAwait(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockIChainClient(ctrl)

	chain.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(domain.PendingMint{}, fmt.Errorf("%w: nonce too low", errors.ErrSubmissionRejected)).
		Times(1)
	chain.EXPECT().Await(gomock.Any(), gomock.Any()).Times(0)

	w := NewSignerWorker(slog.Default(), chain, 1)
	startSigner(t, w)

	mint, err := domain.NewMintRequest(wallet, 2)
	req.NoError(err)

	_, err = w.Mint(context.Background(), mint)

	req.ErrorIs(err, errors.ErrSubmissionRejected)
}

func TestSignerWorker_WaitsForTakenSubmission(t *testing.T) {
	mint, err := domain.NewMintRequest(wallet, 3)
	require.NoError(t, err)

	t.Run("should await a broadcast transaction when ctx ends during submit", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chain := mocks.NewMockIChainClient(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		chain.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r domain.MintRequest) (domain.PendingMint, error) {
				cancel()
				time.Sleep(20 * time.Millisecond)
				return domain.PendingMint{Request: r, TxHash: "0xbroadcast"}, nil
			}).
			Times(1)
		chain.EXPECT().
			Await(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, p domain.PendingMint) (domain.Receipt, error) {
				req.Equal("0xbroadcast", p.TxHash)
				return domain.Receipt{}, fmt.Errorf("%w: %v", errors.ErrConfirmationFailed, ctx.Err())
			}).
			Times(1)

		w := NewSignerWorker(slog.Default(), chain, 1)
		startSigner(t, w)

		_, err := w.Mint(ctx, mint)

		req.ErrorIs(err, errors.ErrConfirmationFailed)
		req.NotErrorIs(err, errors.ErrSignerStopped)
	})

	t.Run("should await a broadcast transaction when closed during submit", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chain := mocks.NewMockIChainClient(ctrl)
		w := NewSignerWorker(slog.Default(), chain, 1)

		chain.EXPECT().
			Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r domain.MintRequest) (domain.PendingMint, error) {
				w.Close()
				time.Sleep(20 * time.Millisecond)
				return domain.PendingMint{Request: r, TxHash: "0xbroadcast"}, nil
			}).
			Times(1)
		chain.EXPECT().
			Await(gomock.Any(), gomock.Any()).
			Return(domain.Receipt{TxHash: "0xbroadcast"}, nil).
			Times(1)

		startSigner(t, w)

		receipt, err := w.Mint(context.Background(), mint)

		req.NoError(err)
		req.Equal("0xbroadcast", receipt.TxHash)
	})

	t.Run("should skip submitting a job whose ctx already ended", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chain := mocks.NewMockIChainClient(ctrl)
		chain.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)
		w := NewSignerWorker(slog.Default(), chain, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		job := submitJob{ctx: ctx, req: mint, taken: make(chan struct{}), result: make(chan submitResult, 1)}

		w.submit(job)

		req.True(isClosed(job.taken))
		req.ErrorIs((<-job.result).err, errors.ErrSignerStopped)
	})
}

func TestSignerWorker_Stopped(t *testing.T) {
	mint, err := domain.NewMintRequest(wallet, 2)
	require.NoError(t, err)

	t.Run("should fail once closed", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chain := mocks.NewMockIChainClient(ctrl)
		chain.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

		w := NewSignerWorker(slog.Default(), chain, 0)
		w.Close()
		w.Close()

		_, err := w.Mint(context.Background(), mint)

		req.ErrorIs(err, errors.ErrSignerStopped)
	})

	t.Run("should fail when nobody consumes the queue", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		chain := mocks.NewMockIChainClient(ctrl)
		chain.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

		w := NewSignerWorker(slog.Default(), chain, 0)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := w.Mint(ctx, mint)

		req.ErrorIs(err, errors.ErrSignerStopped)
	})

	t.Run("should stop running when its context ends", func(t *testing.T) {
		req := require.New(t)
		w := NewSignerWorker(slog.Default(), mocks.NewMockIChainClient(gomock.NewController(t)), 0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := w.Run(ctx)

		req.ErrorIs(err, context.Canceled)
	})
}
