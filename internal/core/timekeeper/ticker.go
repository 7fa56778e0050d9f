package timekeeper

import (
	"context"
	"sync"
	"time"
)

// Ticker fires a callback on a fixed cadence while started.
type Ticker struct {
	mu       sync.Mutex
	interval time.Duration
	onTick   func(time.Time)
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewTicker creates a stopped ticker.
func NewTicker(interval time.Duration, onTick func(time.Time)) *Ticker {
	if interval <= 0 {
		interval = time.Second / 30
	}
	return &Ticker{interval: interval, onTick: onTick}
}

// Start launches the tick loop, stopping any prior instance first.
func (ticker *Ticker) Start(parent context.Context) {
	ticker.mu.Lock()
	if ticker.cancel != nil {
		ticker.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	ticker.cancel = cancel
	ticker.done = done
	ticker.mu.Unlock()

	go ticker.run(runCtx, done)
}

// Stop cancels the loop without waiting for it to exit, so it is safe to
// call while holding a lock the tick callback needs.
func (ticker *Ticker) Stop() {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.cancel != nil {
		ticker.cancel()
		ticker.cancel = nil
	}
}

// Wait blocks until the most recently started loop has exited.
func (ticker *Ticker) Wait() {
	ticker.mu.Lock()
	done := ticker.done
	ticker.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Running reports whether a loop is active.
func (ticker *Ticker) Running() bool {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return ticker.cancel != nil
}

func (ticker *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	clock := time.NewTicker(ticker.interval)
	defer clock.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tickTime := <-clock.C:
			if ctx.Err() != nil {
				return
			}
			ticker.onTick(tickTime)
		}
	}
}
