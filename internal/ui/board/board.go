// Package board turns a TimerState into the text and colour of every cell
// the front-ends draw. It knows nothing about fyne or terminals.
package board

import (
	"fmt"

	"splitcaster/internal/core/format"
	"splitcaster/internal/core/model"
)

// Tone is the colour class of a cell.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGold
	ToneAhead
	ToneBehind
)

// Row is one split line.
type Row struct {
	Icon       string
	Name       string
	Delta      string
	SplitTime  string
	Cumulative string
	Tone       Tone
	Active     bool
}

// Board is everything a splits view shows.
type Board struct {
	Game            string
	Category        string
	Attempts        string
	Rows            []Row
	Timer           string
	TimerTone       Tone
	PersonalBest    string
	SumOfBest       string
	NeedsPermission bool
}

// Build lays out state. showHundredths selects "1:02.34" over "1:02".
func Build(state model.TimerState, showHundredths bool) Board {
	route := state.Route
	board := Board{
		Game:            route.GameName,
		Category:        category(route),
		Attempts:        attempts(route.AttemptCount),
		Timer:           format.Elapsed(model.Some(0), showHundredths),
		PersonalBest:    "PB " + format.Elapsed(model.TotalTime(route.BestRun), showHundredths),
		SumOfBest:       "SoB " + format.Elapsed(route.SumOfBest(), showHundredths),
		NeedsPermission: state.Phase == model.PhaseNeedsPermission,
		Rows:            make([]Row, 0, len(route.Splits)),
	}

	running := state.Phase == model.PhaseRunning
	for index, template := range route.Splits {
		row := Row{
			Icon:       template.Icon,
			Name:       template.Name,
			SplitTime:  format.Elapsed(template.BestElapsed, showHundredths),
			Cumulative: format.Elapsed(model.TotalTimeUpTo(route.BestRun, index), showHundredths),
		}
		if index < len(route.CurrentRun) && route.CurrentRun[index].StartTime.Valid {
			split := route.CurrentRun[index]
			row.Active = running && index == route.CurrentSplit
			row.SplitTime = format.Elapsed(split.Elapsed(), showHundredths)
			row.Cumulative = format.Elapsed(split.CumulativeElapsed(), showHundredths)
			row.Tone = splitTone(split, row.Active)

			delta := model.TotalTimeUpTo(route.CurrentRun, index).Sub(model.TotalTimeUpTo(route.BestRun, index))
			if delta.Valid {
				row.Delta = format.Delta(delta)
			}
		}
		board.Rows = append(board.Rows, row)
	}

	if total := model.TotalTime(route.CurrentRun); total.Valid {
		board.Timer = format.Elapsed(total, showHundredths)
		board.TimerTone = timerTone(state)
	}
	return board
}

// Status is the one-line summary shown in the tray menu.
func Status(state model.TimerState) string {
	route := state.Route
	switch state.Phase {
	case model.PhaseNeedsPermission:
		return "Waiting for key access"
	case model.PhaseRunning:
		return fmt.Sprintf("Running · %d/%d · %s",
			route.CurrentSplit+1, len(route.Splits), format.HMS(model.TotalTime(route.CurrentRun)))
	default:
		return "Stopped · " + attempts(route.AttemptCount)
	}
}

func splitTone(split model.Split, active bool) Tone {
	switch {
	case !active && split.IsGold:
		return ToneGold
	case split.IsAheadOfPace:
		return ToneAhead
	default:
		return ToneBehind
	}
}

func timerTone(state model.TimerState) Tone {
	route := state.Route
	if state.Phase == model.PhaseRunning {
		if route.CurrentSplit >= 0 && route.CurrentSplit < len(route.CurrentRun) && !route.CurrentRun[route.CurrentSplit].IsAheadOfPace {
			return ToneBehind
		}
		return ToneAhead
	}
	if route.CurrentRunIsBest() {
		return ToneGold
	}
	return ToneNeutral
}

func category(route model.Route) string {
	if route.Platform == "" {
		return route.Name
	}
	return route.Name + " · " + route.Platform
}

func attempts(count int) string {
	if count == 1 {
		return "1 attempt"
	}
	return fmt.Sprintf("%d attempts", count)
}
