package promise

import "github.com/hashicorp/go-hclog"

// Promise is the producer-side handle of a single-shot completion. It is
// the only entity that can transition the shared state from pending to
// resolved or rejected, and it can do so exactly once: after the first
// Resolve, Reject or Complete, every further producer call is a no-op.
//
// A Promise must not be copied after first use.
type Promise[T any, E error] struct {
	future *Future[T, E]
}

// Option configures a Promise or Publisher-side primitive at construction.
type Option func(*options)

type options struct {
	logger hclog.Logger
	name   string
}

// WithLogger attaches a structured logging sink to the instance. The
// default is nil, which disables logging entirely. Logging configuration is
// strictly per instance; there is no process-wide toggle.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithName sets the name used in log lines for the instance.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a pending Promise.
func New[T any, E error](opts ...Option) *Promise[T, E] {
	o := buildOptions(opts)
	return &Promise[T, E]{
		future: &Future[T, E]{cell: newCell[T, E](o.logger, o.name)},
	}
}

// Future returns the consumer-side handle sharing this promise's state.
func (p *Promise[T, E]) Future() *Future[T, E] {
	return p.future
}

// Resolve completes the promise successfully with value.
// No-op if the promise is already complete.
func (p *Promise[T, E]) Resolve(value T) {
	p.future.cell.complete(Success[T, E](value))
}

// Reject completes the promise with err.
// No-op if the promise is already complete.
func (p *Promise[T, E]) Reject(err E) {
	p.future.cell.complete(Failure[T, E](err))
}

// Complete completes the promise with an already-constructed Result.
// No-op if the promise is already complete.
func (p *Promise[T, E]) Complete(res Result[T, E]) {
	p.future.cell.complete(res)
}

// IsComplete reports whether the promise has been completed.
func (p *Promise[T, E]) IsComplete() bool {
	return p.future.IsComplete()
}

// Resolved returns a Future that is already resolved with value.
func Resolved[T any, E error](value T) *Future[T, E] {
	return Completed(Success[T, E](value))
}

// Rejected returns a Future that is already rejected with err.
func Rejected[T any, E error](err E) *Future[T, E] {
	return Completed(Failure[T, E](err))
}

// Completed returns a Future already completed with res.
func Completed[T any, E error](res Result[T, E]) *Future[T, E] {
	p := New[T, E]()
	p.Complete(res)
	return p.Future()
}
