package reducer

import (
	"time"

	"splitcaster/internal/core/model"
)

// Event is an input to Reduce.
type Event interface {
	eventMarker()
}

// SplitTrigger is a press of the split key. At is when the key went down,
// Now is a live clock sample taken when the event is applied and seeds the
// newly opened split's end time until the next tick.
type SplitTrigger struct {
	At  time.Duration
	Now time.Duration
}

func (SplitTrigger) eventMarker() {}

// Tick is the periodic refresh while a run is active.
type Tick struct {
	Now time.Duration
}

func (Tick) eventMarker() {}

// PermissionResult reports whether the split key can be captured.
type PermissionResult struct {
	Granted bool
}

func (PermissionResult) eventMarker() {}

// RouteLoaded replaces the route, e.g. after the route file was edited.
type RouteLoaded struct {
	Route model.Route
}

func (RouteLoaded) eventMarker() {}
