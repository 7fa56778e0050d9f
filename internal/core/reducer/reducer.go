// Package reducer holds the pure run/split state machine.
//
// Reduce never reads a clock, performs I/O or mutates its input: every time
// value arrives on the event, and every transition returns a new TimerState
// whose slices are fresh copies.
package reducer

import (
	"time"

	"splitcaster/internal/core/model"
)

// Reduce computes the state that follows state after event.
func Reduce(state model.TimerState, event Event) model.TimerState {
	switch ev := event.(type) {
	case SplitTrigger:
		switch state.Phase {
		case model.PhaseStopped:
			return startRun(state, ev)
		case model.PhaseRunning:
			return advanceSplit(state, ev)
		}
	case Tick:
		if state.Phase == model.PhaseRunning {
			return tick(state, ev)
		}
	case PermissionResult:
		return permission(state, ev)
	case RouteLoaded:
		if state.Phase != model.PhaseRunning {
			return model.TimerState{Phase: state.Phase, Route: ev.Route.Seeded()}
		}
	}
	return state
}

func permission(state model.TimerState, result PermissionResult) model.TimerState {
	switch state.Phase {
	case model.PhaseNeedsPermission:
		if result.Granted {
			state.Phase = model.PhaseStopped
		}
	case model.PhaseStopped:
		if !result.Granted {
			state.Phase = model.PhaseNeedsPermission
		}
	}
	return state
}

func startRun(state model.TimerState, trigger SplitTrigger) model.TimerState {
	if len(state.Route.Splits) == 0 {
		return state
	}

	route := state.Route.Clone()
	route.CurrentRun = model.FreshRun(route.Splits)
	route.CurrentSplit = 0
	route.AttemptCount++

	first := route.CurrentRun[0]
	first.StartTime = model.Some(trigger.At)
	first.RunStartTime = model.Some(trigger.At)
	first.EndTime = model.Some(notBefore(trigger.Now, trigger.At))
	route.CurrentRun[0] = first
	route.CurrentRun[0].IsAheadOfPace = aheadOfPace(route, 0)

	return model.TimerState{Phase: model.PhaseRunning, Route: route}
}

func advanceSplit(state model.TimerState, trigger SplitTrigger) model.TimerState {
	index := state.Route.CurrentSplit
	count := len(state.Route.CurrentRun)
	if index < 0 || index >= count || count != len(state.Route.Splits) {
		return state
	}
	if !state.Route.CurrentRun[index].StartTime.Valid {
		return state
	}

	route := state.Route.Clone()
	closing := route.CurrentRun[index]
	closing.EndTime = model.Some(notBefore(trigger.At, closing.StartTime.Duration))
	closing.IsGold = isGold(closing, route, index)
	route.CurrentRun[index] = closing
	route.CurrentRun[index].IsAheadOfPace = aheadOfPace(route, index)

	if index == count-1 {
		return finishRun(route)
	}

	next := route.CurrentRun[index+1]
	next.StartTime = model.Some(trigger.At)
	next.RunStartTime = route.CurrentRun[0].StartTime
	next.EndTime = model.Some(notBefore(trigger.Now, trigger.At))
	route.CurrentRun[index+1] = next
	route.CurrentSplit = index + 1
	route.CurrentRun[index+1].IsAheadOfPace = aheadOfPace(route, index+1)

	return model.TimerState{Phase: model.PhaseRunning, Route: route}
}

// finishRun promotes the run and the per-split bests. Both are independent:
// a split can set a new best inside a run that is not a new PB.
func finishRun(route model.Route) model.TimerState {
	if !route.HasBestRun() || model.TotalTime(route.CurrentRun).Less(model.TotalTime(route.BestRun)) {
		route.BestRun = append([]model.Split(nil), route.CurrentRun...)
	}

	for index := range route.Splits {
		elapsed := route.CurrentRun[index].Elapsed()
		if !elapsed.Valid {
			continue
		}
		if !route.Splits[index].BestElapsed.Valid || elapsed.Less(route.Splits[index].BestElapsed) {
			route.Splits[index].BestElapsed = elapsed
		}
	}

	return model.TimerState{Phase: model.PhaseStopped, Route: route}
}

func tick(state model.TimerState, ev Tick) model.TimerState {
	index := state.Route.CurrentSplit
	if index < 0 || index >= len(state.Route.CurrentRun) {
		return state
	}
	active := state.Route.CurrentRun[index]
	if !active.StartTime.Valid {
		return state
	}

	route := state.Route
	route.CurrentRun = append([]model.Split(nil), state.Route.CurrentRun...)
	active.EndTime = model.Some(notBefore(ev.Now, active.StartTime.Duration))
	route.CurrentRun[index] = active
	route.CurrentRun[index].IsAheadOfPace = aheadOfPace(route, index)

	return model.TimerState{Phase: state.Phase, Route: route}
}

// isGold compares the split against the same split of the best run. Ties
// count. Without a usable best run every split is gold.
func isGold(split model.Split, route model.Route, index int) bool {
	if !route.HasBestRun() {
		return true
	}
	return split.Elapsed().LessOrEqual(route.BestRun[index].Elapsed())
}

// aheadOfPace compares cumulative time to the split at index with the best
// run's cumulative time to the same split. Ties count as ahead.
func aheadOfPace(route model.Route, index int) bool {
	if !route.HasBestRun() {
		return true
	}
	return model.TotalTimeUpTo(route.CurrentRun, index).LessOrEqual(model.TotalTimeUpTo(route.BestRun, index))
}

func notBefore(value, floor time.Duration) time.Duration {
	if value < floor {
		return floor
	}
	return value
}
