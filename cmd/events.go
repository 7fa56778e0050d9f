package main

import (
	"splitcaster/internal/core/model"
	"splitcaster/internal/core/timekeeper"
)

// goldRow returns the row to pulse when event closed a split faster than
// its previous best.
func goldRow(event timekeeper.Event) (int, bool) {
	if event.Type != timekeeper.EventSplit && event.Type != timekeeper.EventStateChange {
		return 0, false
	}
	run := event.State.Route.CurrentRun
	if event.Closed < 0 || event.Closed >= len(run) {
		return 0, false
	}
	return event.Closed, run[event.Closed].IsGold
}

// trayIconName picks the tray logo for phase.
func trayIconName(phase model.Phase) string {
	if phase == model.PhaseRunning {
		return "logo_running.svg"
	}
	return "logo.svg"
}
