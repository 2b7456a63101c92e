package promise

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jakehawken/propagate/executors"
)

// registration pairs a callback with the executor it should run on.
// A nil executor means the owning cell's serial context.
type registration[V any] struct {
	on executors.Executor
	cb func(V)
}

// cell is the completion state shared by a Promise and its Future: at most
// one Result, set once, plus the not-yet-fired callback registrations.
// All fields are guarded by mu. Each cell has its own lock and its own
// serial execution context; two cells never contend.
type cell[T any, E error] struct {
	mu sync.Mutex

	result  *Result[T, E]
	success []registration[T]
	failure []registration[E]
	finally []registration[Result[T, E]]

	// serial is the default execution context for registrations made with
	// a nil executor. Created lazily on first use.
	serial *executors.Serial

	// done is closed when result is set; Await blocks on it.
	done chan struct{}

	logger hclog.Logger
	name   string
}

func newCell[T any, E error](logger hclog.Logger, name string) *cell[T, E] {
	return &cell[T, E]{
		done:   make(chan struct{}),
		logger: logger,
		name:   name,
	}
}

// defaultExecutor returns the cell's own serial context, creating it on
// first use. Callers must hold mu.
func (c *cell[T, E]) defaultExecutor() executors.Executor {
	if c.serial == nil {
		c.serial = executors.NewSerial()
	}
	return c.serial
}

// Each register method stores a callback for its category, or fires it
// immediately if the cell already holds a result.
func (c *cell[T, E]) registerSuccess(on executors.Executor, cb func(T)) {
	c.mu.Lock()
	if on == nil {
		on = c.defaultExecutor()
	}
	if c.result == nil {
		c.success = append(c.success, registration[T]{on: on, cb: cb})
		c.mu.Unlock()
		return
	}
	res := *c.result
	c.mu.Unlock()

	if v, ok := res.Value(); ok {
		on.Submit(func() { cb(v) })
	}
}

func (c *cell[T, E]) registerFailure(on executors.Executor, cb func(E)) {
	c.mu.Lock()
	if on == nil {
		on = c.defaultExecutor()
	}
	if c.result == nil {
		c.failure = append(c.failure, registration[E]{on: on, cb: cb})
		c.mu.Unlock()
		return
	}
	res := *c.result
	c.mu.Unlock()

	if e, ok := res.Err(); ok {
		on.Submit(func() { cb(e) })
	}
}

func (c *cell[T, E]) registerFinally(on executors.Executor, cb func(Result[T, E])) {
	c.mu.Lock()
	if on == nil {
		on = c.defaultExecutor()
	}
	if c.result == nil {
		c.finally = append(c.finally, registration[Result[T, E]]{on: on, cb: cb})
		c.mu.Unlock()
		return
	}
	res := *c.result
	c.mu.Unlock()

	on.Submit(func() { cb(res) })
}

// complete sets the result and fires the stored registrations: the matching
// outcome category first, in registration order, then the finally
// registrations. First write wins; any later write is silently discarded.
func (c *cell[T, E]) complete(res Result[T, E]) {
	c.mu.Lock()
	if c.result != nil {
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.Trace("discarding completion of already-complete promise", "promise", c.name)
		}
		return
	}
	stored := res
	c.result = &stored
	success := c.success
	failure := c.failure
	finally := c.finally
	c.success, c.failure, c.finally = nil, nil, nil
	c.mu.Unlock()

	close(c.done)

	if c.logger != nil {
		c.logger.Debug("promise completed", "promise", c.name, "result", res.String())
	}

	if v, ok := res.Value(); ok {
		for _, reg := range success {
			reg := reg
			reg.on.Submit(func() { reg.cb(v) })
		}
	}
	if e, ok := res.Err(); ok {
		for _, reg := range failure {
			reg := reg
			reg.on.Submit(func() { reg.cb(e) })
		}
	}
	for _, reg := range finally {
		reg := reg
		reg.on.Submit(func() { reg.cb(stored) })
	}
}

// snapshot returns the result if the cell is complete.
func (c *cell[T, E]) snapshot() (Result[T, E], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		var zero Result[T, E]
		return zero, false
	}
	return *c.result, true
}
