// Package flash pulses the highlight of a split row when it closes gold.
package flash

import (
	"context"
	"sync"
	"time"
)

// Config contains pulse timing values.
type Config struct {
	Cycles int
	On     time.Duration
	Off    time.Duration
}

// DefaultConfig returns three quick pulses.
func DefaultConfig() Config {
	return Config{
		Cycles: 3,
		On:     220 * time.Millisecond,
		Off:    160 * time.Millisecond,
	}
}

// Engine runs at most one pulse at a time. Starting a pulse cancels the
// previous one and switches its row off.
type Engine struct {
	mu           sync.Mutex
	config       Config
	setHighlight func(row int, on bool)
	cancel       context.CancelFunc
	generation   uint64
	row          int
	active       bool
	highlighted  bool
}

// New creates a pulse engine. setHighlight is called from the pulse goroutine.
func New(config Config, setHighlight func(row int, on bool)) *Engine {
	if config.Cycles <= 0 {
		config.Cycles = 1
	}
	return &Engine{
		config:       config,
		setHighlight: setHighlight,
	}
}

// Pulse highlights row for the configured number of on/off cycles.
func (engine *Engine) Pulse(ctx context.Context, row int) {
	engine.mu.Lock()
	engine.stopLocked()
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.generation++
	engine.row = row
	engine.active = true
	generation := engine.generation
	engine.mu.Unlock()

	go engine.run(runCtx, generation, row)
}

// Stop cancels the running pulse, if any, and switches its row off.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

func (engine *Engine) stopLocked() {
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	if engine.active {
		engine.active = false
		engine.generation++
		if engine.highlighted {
			engine.setHighlight(engine.row, false)
		}
	}
	engine.highlighted = false
}

func (engine *Engine) run(ctx context.Context, generation uint64, row int) {
	defer engine.finish(generation, row)
	for cycle := 0; cycle < engine.config.Cycles; cycle++ {
		if !engine.apply(generation, row, true) {
			return
		}
		if !sleepWithContext(ctx, engine.config.On) {
			return
		}
		if !engine.apply(generation, row, false) {
			return
		}
		if cycle < engine.config.Cycles-1 && !sleepWithContext(ctx, engine.config.Off) {
			return
		}
	}
}

// finish switches the row off if the pulse ended early and nothing newer
// has taken over.
func (engine *Engine) finish(generation uint64, row int) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.generation != generation || !engine.active {
		return
	}
	engine.active = false
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	if engine.highlighted {
		engine.highlighted = false
		engine.setHighlight(row, false)
	}
}

// apply forwards a highlight change unless the pulse has been superseded.
func (engine *Engine) apply(generation uint64, row int, on bool) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.generation != generation {
		return false
	}
	engine.setHighlight(row, on)
	engine.highlighted = on
	return true
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
