package stream

import (
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/jakehawken/propagate/weakref"
)

// Option configures a publisher at construction.
type Option func(*options)

type options struct {
	logger hclog.Logger
	name   string
}

// WithLogger attaches a structured logging sink to the publisher. The
// default is nil, which disables logging entirely. Logging configuration is
// strictly per instance; there is no process-wide toggle.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithName sets the name used in log lines for the publisher.
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

// pubCore holds the broadcast state shared between the Publisher handle,
// its subscribers' cancellers, and the teardown cleanup. All fields are
// guarded by mu; each publisher has its own lock and no two publishers
// ever contend.
type pubCore[T any, E error] struct {
	mu        sync.Mutex
	subs      weakref.Collection[Subscriber[T, E]]
	cancelled bool

	logger hclog.Logger
	name   string
}

// Publisher is the producer end of a stream. It holds its subscribers
// weakly: dropping the last consumer-side reference to a subscriber never
// keeps it alive, and the dead slot is pruned on the next broadcast.
//
// Dropping the last reference to a Publisher without calling CancelAll
// still delivers Cancelled to every live subscriber, via a GC cleanup on
// the handle. Explicit CancelAll is the deterministic way to tear down.
type Publisher[T any, E error] struct {
	core *pubCore[T, E]
}

// NewPublisher creates a Publisher with no subscribers.
func NewPublisher[T any, E error](opts ...Option) *Publisher[T, E] {
	o := buildOptions(opts)
	p := &Publisher[T, E]{core: &pubCore[T, E]{logger: o.logger, name: o.name}}
	// the core carries no reference back to the handle, so the cleanup can
	// run as soon as the handle itself is unreachable.
	runtime.AddCleanup(p, func(c *pubCore[T, E]) { c.cancelAll() }, p.core)
	return p
}

// Subscriber creates, registers and returns a new subscriber. It will
// observe every state published after this call. On an already-cancelled
// publisher the returned subscriber is itself already cancelled.
func (p *Publisher[T, E]) Subscriber() *Subscriber[T, E] {
	s := p.core.newSubscriber(nil)
	runtime.KeepAlive(p)
	return s
}

// Publish broadcasts value to every live subscriber.
// No-op after cancellation.
func (p *Publisher[T, E]) Publish(value T) {
	p.core.publishState(Data[T, E](value))
	runtime.KeepAlive(p)
}

// PublishError broadcasts err to every live subscriber.
// No-op after cancellation.
func (p *Publisher[T, E]) PublishError(err E) {
	p.core.publishState(Error[T, E](err))
	runtime.KeepAlive(p)
}

// PublishState broadcasts an already-constructed state. A Cancelled state
// is equivalent to calling CancelAll.
func (p *Publisher[T, E]) PublishState(st State[T, E]) {
	p.core.publishState(st)
	runtime.KeepAlive(p)
}

// CancelAll marks the publisher cancelled, drains its subscriber
// collection, and delivers one final Cancelled state to each drained
// subscriber. Only the first call has any effect.
func (p *Publisher[T, E]) CancelAll() {
	p.core.cancelAll()
	runtime.KeepAlive(p)
}

// IsCancelled reports whether the publisher has been cancelled.
func (p *Publisher[T, E]) IsCancelled() bool {
	cancelled := p.core.isCancelled()
	runtime.KeepAlive(p)
	return cancelled
}

func (c *pubCore[T, E]) newSubscriber(replay *State[T, E]) *Subscriber[T, E] {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return &Subscriber[T, E]{id: uuid.NewString(), cancelled: true}
	}

	s := &Subscriber[T, E]{id: uuid.NewString(), replay: replay}
	s.canceller = func(self *Subscriber[T, E]) {
		c.drop(self.id, self)
	}
	c.subs.Insert(s)
	c.mu.Unlock()

	// prune eagerly if the consumer drops the subscriber without
	// cancelling. The id alone is captured, so the cleanup never keeps the
	// subscriber alive.
	id := s.id
	runtime.AddCleanup(s, func(string) { c.drop(id, nil) }, id)

	if c.logger != nil {
		c.logger.Debug("subscriber registered", "publisher", c.name, "subscriber", s.id)
	}
	return s
}

// drop removes the subscriber with the given id and, when the subscriber
// is still reachable, delivers it a final Cancelled state.
func (c *pubCore[T, E]) drop(id string, s *Subscriber[T, E]) {
	c.mu.Lock()
	c.subs.PruneIf(func(x *Subscriber[T, E]) bool { return x.id == id })
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("subscriber removed", "publisher", c.name, "subscriber", id)
	}
	if s != nil {
		s.receive(Cancelled[T, E]())
	}
}

func (c *pubCore[T, E]) publishState(st State[T, E]) {
	if st.IsCancelled() {
		c.cancelAll()
		return
	}

	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	var targets []*Subscriber[T, E]
	c.subs.ForEach(func(s *Subscriber[T, E]) {
		targets = append(targets, s)
	})
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("publishing", "publisher", c.name, "state", st.String(), "subscribers", len(targets))
	}
	for _, s := range targets {
		s.receive(st)
	}
}

func (c *pubCore[T, E]) cancelAll() {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	c.cancelled = true
	removed := c.subs.RemoveAll()
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("cancelling all subscribers", "publisher", c.name, "subscribers", len(removed))
	}
	for _, s := range removed {
		s.receive(Cancelled[T, E]())
	}
}

func (c *pubCore[T, E]) isCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}
