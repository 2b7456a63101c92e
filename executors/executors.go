package executors

// Executor runs jobs submitted to it. Submit must not block on the job
// itself, though it may block briefly on internal bookkeeping (for example
// a Pool waiting for a free worker slot).
type Executor interface {
	Submit(func())
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(func())

func (e ExecutorFunc) Submit(f func()) {
	e(f)
}

// Go runs every job on a new goroutine.
type Go struct{}

func (Go) Submit(f func()) {
	go f()
}

// Immediate runs every job inline on the goroutine that submitted it.
// Useful in tests and for callbacks that are already on the right context.
type Immediate struct{}

func (Immediate) Submit(f func()) {
	f()
}

// Pool runs jobs on goroutines bounded by a fixed number of workers.
// Submit blocks while all workers are busy.
type Pool struct {
	sem chan struct{}
}

// NewPool creates a Pool with at most maxWorkers concurrent jobs.
func NewPool(maxWorkers int) *Pool {
	return &Pool{
		sem: make(chan struct{}, maxWorkers),
	}
}

func (p *Pool) Submit(f func()) {
	p.sem <- struct{}{}
	go func() {
		defer func() { <-p.sem }()
		f()
	}()
}
