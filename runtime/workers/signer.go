package workers

import (
	"context"
	"fmt"
	"log/slog"

	"mint-bot/contract"
	"mint-bot/domain"
	"mint-bot/errors"
)

type submitResult struct {
	pending domain.PendingMint
	err     error
}

// taken is closed by the worker before it decides whether to submit.
// Once taken is closed the job always gets exactly one result.
type submitJob struct {
	ctx    context.Context
	req    domain.MintRequest
	taken  chan struct{}
	result chan submitResult
}

// SignerWorker is the single writer for one signing identity.
// Submissions go through its queue one at a time so nonces are never raced.
// Waiting for inclusion happens in the caller's goroutine.
type SignerWorker struct {
	log   *slog.Logger
	chain contract.IChainClient
	jobs  chan submitJob
	done  chan struct{}
}

func NewSignerWorker(log *slog.Logger, chain contract.IChainClient, queueSize int) *SignerWorker {
	return &SignerWorker{
		log:   log,
		chain: chain,
		jobs:  make(chan submitJob, queueSize),
		done:  make(chan struct{}),
	}
}

func (w *SignerWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping signer worker")
			return ctx.Err()
		case job := <-w.jobs:
			w.submit(job)
		}
	}
}

func (w *SignerWorker) submit(job submitJob) {
	close(job.taken)
	replied := false
	defer func() {
		if !replied {
			job.result <- submitResult{err: fmt.Errorf("%w: signer panicked", errors.ErrSubmissionRejected)}
		}
	}()

	if err := job.ctx.Err(); err != nil {
		job.result <- submitResult{err: fmt.Errorf("%w: %v", errors.ErrSignerStopped, err)}
		replied = true
		return
	}
	select {
	case <-w.done:
		job.result <- submitResult{err: errors.ErrSignerStopped}
		replied = true
		return
	default:
	}

	pending, err := w.chain.Submit(job.ctx, job.req)
	job.result <- submitResult{pending: pending, err: err}
	replied = true
}

// Close makes queued and future Mint calls fail with ErrSignerStopped.
// A job the worker has already taken still completes.
func (w *SignerWorker) Close() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}

// Mint queues the submission and then awaits inclusion.
// Once the worker has taken the job Mint waits for its result even if ctx ends,
// so a broadcast transaction is never reported as not submitted.
func (w *SignerWorker) Mint(ctx context.Context, req domain.MintRequest) (domain.Receipt, error) {
	job := submitJob{
		ctx:    ctx,
		req:    req,
		taken:  make(chan struct{}),
		result: make(chan submitResult, 1),
	}

	select {
	case <-w.done:
		return domain.Receipt{}, errors.ErrSignerStopped
	case <-ctx.Done():
		return domain.Receipt{}, fmt.Errorf("%w: %v", errors.ErrSignerStopped, ctx.Err())
	case w.jobs <- job:
	}

	var res submitResult
	select {
	case res = <-job.result:
	case <-w.done:
		if !isClosed(job.taken) {
			return domain.Receipt{}, errors.ErrSignerStopped
		}
		res = <-job.result
	case <-ctx.Done():
		if !isClosed(job.taken) {
			return domain.Receipt{}, fmt.Errorf("%w: %v", errors.ErrSignerStopped, ctx.Err())
		}
		res = <-job.result
	}
	if res.err != nil {
		return domain.Receipt{}, res.err
	}
	return w.chain.Await(ctx, res.pending)
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
