package model

import (
	"errors"
	"fmt"
)

// Phase is the run phase of the timer.
type Phase string

const (
	PhaseNeedsPermission Phase = "needs_permission"
	PhaseStopped         Phase = "stopped"
	PhaseRunning         Phase = "running"
)

// TimerState is the immutable snapshot handed to presentation and
// persistence. Transitions build a new value; published slices are never
// written again.
type TimerState struct {
	Phase Phase
	Route Route
}

// NewTimerState returns a state for the route with its current run seeded.
func NewTimerState(phase Phase, route Route) TimerState {
	return TimerState{Phase: phase, Route: route.Seeded()}
}

// Validate reports broken invariants. The reducer never produces them, so
// any error here is a logic bug.
func (state TimerState) Validate() error {
	var errs []error
	route := state.Route
	switch state.Phase {
	case PhaseNeedsPermission, PhaseStopped, PhaseRunning:
	default:
		errs = append(errs, fmt.Errorf("unknown phase %q", state.Phase))
	}
	if len(route.CurrentRun) != len(route.Splits) {
		errs = append(errs, fmt.Errorf("current run has %d splits, route has %d", len(route.CurrentRun), len(route.Splits)))
	}
	if len(route.Splits) > 0 && (route.CurrentSplit < 0 || route.CurrentSplit >= len(route.Splits)) {
		errs = append(errs, fmt.Errorf("current split %d out of range", route.CurrentSplit))
	}
	if route.BestRun != nil && len(route.BestRun) != len(route.Splits) {
		errs = append(errs, fmt.Errorf("best run has %d splits, route has %d", len(route.BestRun), len(route.Splits)))
	}
	for index, split := range route.CurrentRun {
		if split.EndTime.Valid && !split.StartTime.Valid {
			errs = append(errs, fmt.Errorf("split %d has an end time but no start time", index))
		}
		if split.EndTime.Valid && split.StartTime.Valid && split.EndTime.Duration < split.StartTime.Duration {
			errs = append(errs, fmt.Errorf("split %d ends before it starts", index))
		}
	}
	if state.Phase == PhaseRunning && route.CurrentSplit >= 0 && route.CurrentSplit < len(route.CurrentRun) {
		if !route.CurrentRun[route.CurrentSplit].StartTime.Valid {
			errs = append(errs, errors.New("running without an active split"))
		}
	}
	return errors.Join(errs...)
}
