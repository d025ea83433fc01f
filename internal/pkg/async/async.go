package async

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner executes best-effort work detached from the caller's request
// lifetime. Failures are observed through logging only; callers must not
// depend on the outcome.
type Runner interface {
	Go(op string, fn func(ctx context.Context) error)
	// GoSerial runs tasks sharing a key one at a time, in submission
	// order. Writers that overwrite each other (cart upserts for one
	// owner) use it so the last accepted mutation is the last durable
	// write.
	GoSerial(key, op string, fn func(ctx context.Context) error)
}

type task struct {
	op string
	fn func(ctx context.Context) error
}

type BackgroundRunner struct {
	timeout time.Duration

	mu     sync.Mutex
	queues map[string][]task
}

func NewBackgroundRunner(timeout time.Duration) *BackgroundRunner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackgroundRunner{
		timeout: timeout,
		queues:  make(map[string][]task),
	}
}

func (r *BackgroundRunner) Go(op string, fn func(ctx context.Context) error) {
	go r.run(op, fn)
}

func (r *BackgroundRunner) GoSerial(key, op string, fn func(ctx context.Context) error) {
	r.mu.Lock()
	pending, active := r.queues[key]
	r.queues[key] = append(pending, task{op: op, fn: fn})
	r.mu.Unlock()

	// The key only exists in the map while a drainer owns it.
	if !active {
		go r.drain(key)
	}
}

func (r *BackgroundRunner) drain(key string) {
	for {
		r.mu.Lock()
		pending := r.queues[key]
		if len(pending) == 0 {
			delete(r.queues, key)
			r.mu.Unlock()
			return
		}
		next := pending[0]
		r.queues[key] = pending[1:]
		r.mu.Unlock()

		r.run(next.op, next.fn)
	}
}

func (r *BackgroundRunner) run(op string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		slog.Warn("background operation failed", "op", op, "error", err)
	}
}

// SyncRunner runs tasks inline. Used in tests so persistence effects are
// observable without synchronization.
type SyncRunner struct {
	Errs []error
}

func (r *SyncRunner) Go(op string, fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		r.Errs = append(r.Errs, err)
	}
}

func (r *SyncRunner) GoSerial(_, op string, fn func(ctx context.Context) error) {
	r.Go(op, fn)
}
