package executors

import "sync"

// Serial runs jobs one at a time, in submission order. Jobs run on a
// background goroutine that exists only while the queue is non-empty, so an
// idle Serial holds no resources and never needs to be shut down.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

// NewSerial creates an empty Serial executor.
func NewSerial() *Serial {
	return &Serial{}
}

// Submit enqueues f. It never blocks on f or on previously submitted jobs.
func (s *Serial) Submit(f func()) {
	s.mu.Lock()
	s.queue = append(s.queue, f)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.drain()
}

func (s *Serial) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		f := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		f()
	}
}
