package timekeeper

import (
	"sync"
	"time"

	"splitcaster/internal/core/model"
)

// Persister writes the persistent part of a route.
type Persister interface {
	SaveRoute(route model.Route) error
}

// saver writes routes on a background goroutine. Only the latest requested
// route matters: a newer request replaces a pending one, and a failed write
// stays pending until it succeeds or is superseded.
type saver struct {
	persister  Persister
	retryDelay time.Duration
	onError    func(error)

	mu      sync.Mutex
	pending *model.Route
	wake    chan struct{}
	stopCh  chan struct{}
	done    chan struct{}
}

func newSaver(persister Persister, retryDelay time.Duration, onError func(error)) *saver {
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	s := &saver{
		persister:  persister,
		retryDelay: retryDelay,
		onError:    onError,
		wake:       make(chan struct{}, 1),
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
	go s.run()
	return s
}

// enqueue never blocks.
func (s *saver) enqueue(route model.Route) {
	s.mu.Lock()
	s.pending = &route
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// stop ends the loop and makes one last synchronous attempt at a pending save.
func (s *saver) stop() {
	close(s.stopCh)
	<-s.done
	if route, ok := s.take(); ok {
		if err := s.persister.SaveRoute(route); err != nil && s.onError != nil {
			s.onError(err)
		}
	}
}

func (s *saver) run() {
	defer close(s.done)
	var retry <-chan time.Time

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.wake:
		case <-retry:
		}
		retry = nil

		route, ok := s.take()
		if !ok {
			continue
		}
		if err := s.persister.SaveRoute(route); err != nil {
			s.restore(route)
			if s.onError != nil {
				s.onError(err)
			}
			retry = time.After(s.retryDelay)
		}
	}
}

func (s *saver) take() (model.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return model.Route{}, false
	}
	route := *s.pending
	s.pending = nil
	return route, true
}

// restore puts a failed route back unless something newer arrived meanwhile.
func (s *saver) restore(route model.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.pending = &route
	}
}
