package timekeeper

import (
	"context"
	"sync"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/internal/core/reducer"
)

// TimeKeeper owns the timer state and serializes every transition onto one
// timeline. It runs the reducer, starts and stops the ticker on phase
// changes, queues saves at run start and finish, and fans events out to
// observers.
type TimeKeeper struct {
	mu          sync.Mutex
	config      model.TimeKeeperConfig
	clock       Clock
	state       model.TimerState
	ticker      *Ticker
	saver       *saver
	ctx         context.Context
	cancel      context.CancelFunc
	events      []chan Event
	lastTrigger time.Duration
	triggered   bool
	stopped     bool
	// pendingRoute is the latest route reloaded during a run. It is merged
	// with the run's results when the run ends.
	pendingRoute *model.Route
}

// New creates a TimeKeeper starting from initial.
func New(initial model.TimerState, config model.TimeKeeperConfig, clock Clock, persister Persister) *TimeKeeper {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second / 30
	}
	if config.MinSplitGap < 0 {
		config.MinSplitGap = 0
	}
	if clock == nil {
		clock = NewMonotonicClock()
	}
	if persister == nil {
		persister = discardPersister{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	keeper := &TimeKeeper{
		config: config,
		clock:  clock,
		state:  initial,
		ctx:    ctx,
		cancel: cancel,
	}
	keeper.ticker = NewTicker(config.TickInterval, func(time.Time) {
		keeper.Dispatch(reducer.Tick{Now: keeper.clock.Now()})
	})
	keeper.saver = newSaver(persister, config.SaveRetryDelay, keeper.reportSaveError)

	if initial.Phase == model.PhaseRunning {
		keeper.ticker.Start(ctx)
	}
	return keeper
}

// Subscribe registers a new observer channel. Sends never block: an
// observer that falls behind misses events and should read Snapshot.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.stopped {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns the current state. The value is never modified later.
func (keeper *TimeKeeper) Snapshot() model.TimerState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// SplitPressed handles a split key press stamped now.
func (keeper *TimeKeeper) SplitPressed() bool {
	return keeper.SplitAt(keeper.clock.Now())
}

// SplitAt handles a split key press that happened at the given timestamp.
// Presses closer than MinSplitGap to the previous one are treated as key
// repeat and dropped. It reports whether the press was applied.
func (keeper *TimeKeeper) SplitAt(at time.Duration) bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		return false
	}
	if keeper.triggered && at-keeper.lastTrigger < keeper.config.MinSplitGap {
		return false
	}
	keeper.lastTrigger = at
	keeper.triggered = true

	keeper.applyLocked(reducer.SplitTrigger{At: at, Now: keeper.clock.Now()})
	return true
}

// PermissionResult reports the outcome of a key capture permission check.
func (keeper *TimeKeeper) PermissionResult(granted bool) {
	keeper.Dispatch(reducer.PermissionResult{Granted: granted})
}

// ReplaceRoute swaps in a reloaded route. During a run the route is held
// back and merged with the run's results once the run ends.
func (keeper *TimeKeeper) ReplaceRoute(route model.Route) {
	keeper.Dispatch(reducer.RouteLoaded{Route: route})
}

// Dispatch applies an event.
func (keeper *TimeKeeper) Dispatch(event reducer.Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		return
	}
	keeper.applyLocked(event)
}

// Stop ends the session: the ticker halts, a pending save is flushed and
// observer channels are closed. Safe to call more than once.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.stopped = true
	keeper.ticker.Stop()
	keeper.cancel()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	keeper.ticker.Wait()
	keeper.saver.stop()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) applyLocked(event reducer.Event) {
	previous := keeper.state
	next := reducer.Reduce(previous, event)
	if loaded, ok := event.(reducer.RouteLoaded); ok && previous.Phase == model.PhaseRunning {
		pending := loaded.Route
		keeper.pendingRoute = &pending
	}
	if previous.Phase == model.PhaseRunning && next.Phase != model.PhaseRunning && keeper.pendingRoute != nil {
		next.Route = model.AdoptRunResults(*keeper.pendingRoute, next.Route)
		keeper.pendingRoute = nil
	}
	keeper.state = next
	now := time.Now()

	closed := -1
	if _, ok := event.(reducer.SplitTrigger); ok && previous.Phase == model.PhaseRunning {
		closed = previous.Route.CurrentSplit
	}

	if previous.Phase != next.Phase {
		keeper.handleTransitionLocked(previous.Phase, next)
		keeper.emitLocked(Event{
			Type:     EventStateChange,
			Previous: previous.Phase,
			State:    next,
			Closed:   closed,
			At:       now,
		})
		return
	}

	switch event.(type) {
	case reducer.SplitTrigger:
		if next.Route.CurrentSplit != previous.Route.CurrentSplit {
			keeper.emitLocked(Event{
				Type:     EventSplit,
				Previous: previous.Phase,
				State:    next,
				Closed:   closed,
				At:       now,
			})
		}
	case reducer.Tick:
		if next.Phase == model.PhaseRunning {
			keeper.emitLocked(Event{
				Type:     EventProgress,
				Previous: previous.Phase,
				State:    next,
				Closed:   -1,
				At:       now,
			})
		}
	case reducer.RouteLoaded:
		if next.Phase != model.PhaseRunning {
			keeper.emitLocked(Event{
				Type:     EventRouteLoaded,
				Previous: previous.Phase,
				State:    next,
				Closed:   -1,
				At:       now,
			})
		}
	}
}

// handleTransitionLocked runs the side effects of a phase change. Runs are
// saved when they start (attempt count) and when they finish (bests).
func (keeper *TimeKeeper) handleTransitionLocked(from model.Phase, next model.TimerState) {
	switch {
	case from != model.PhaseRunning && next.Phase == model.PhaseRunning:
		keeper.ticker.Start(keeper.ctx)
		keeper.saver.enqueue(next.Route)
	case from == model.PhaseRunning && next.Phase != model.PhaseRunning:
		keeper.ticker.Stop()
		keeper.saver.enqueue(next.Route)
	}
}

func (keeper *TimeKeeper) reportSaveError(err error) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.emitLocked(Event{
		Type:     EventSaveError,
		Previous: keeper.state.Phase,
		State:    keeper.state,
		Closed:   -1,
		Message:  err.Error(),
		At:       time.Now(),
	})
}

type discardPersister struct{}

func (discardPersister) SaveRoute(model.Route) error { return nil }

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
