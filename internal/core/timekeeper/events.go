package timekeeper

import (
	"time"

	"splitcaster/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventSplit       EventType = "split"
	EventProgress    EventType = "progress"
	EventRouteLoaded EventType = "route_loaded"
	EventSaveError   EventType = "save_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type EventType
	// Previous is the phase before the transition; equal to State.Phase
	// unless Type is EventStateChange.
	Previous model.Phase
	State    model.TimerState
	// Closed is the index of the split that a trigger just closed, or -1.
	Closed  int
	Message string
	At      time.Time
}
