package board

import (
	"testing"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/internal/core/reducer"
)

func route() model.Route {
	return model.Route{
		Name:     "Any%",
		GameName: "Test Game",
		Platform: "PC",
		Splits:   []model.Split{{Name: "A", Icon: "flag.svg"}, {Name: "B"}},
	}
}

func trigger(state model.TimerState, at time.Duration) model.TimerState {
	return reducer.Reduce(state, reducer.SplitTrigger{At: at, Now: at})
}

func TestBuildBeforeFirstRun(t *testing.T) {
	board := Build(model.NewTimerState(model.PhaseStopped, route()), true)

	if board.Game != "Test Game" || board.Category != "Any% · PC" || board.Attempts != "0 attempts" {
		t.Errorf("header = %q / %q / %q", board.Game, board.Category, board.Attempts)
	}
	if board.Timer != "0.00" || board.TimerTone != ToneNeutral {
		t.Errorf("timer = %q tone %d", board.Timer, board.TimerTone)
	}
	if board.PersonalBest != "PB -" || board.SumOfBest != "SoB -" {
		t.Errorf("footer = %q / %q", board.PersonalBest, board.SumOfBest)
	}
	if len(board.Rows) != 2 || board.Rows[0].Icon != "flag.svg" || board.Rows[0].SplitTime != "-" || board.Rows[0].Delta != "" {
		t.Errorf("rows = %+v", board.Rows)
	}
}

func TestBuildDuringAndAfterRuns(t *testing.T) {
	state := model.NewTimerState(model.PhaseStopped, route())
	state = trigger(state, 0)
	state = trigger(state, 10*time.Second)
	state = trigger(state, 25*time.Second)

	finished := Build(state, true)
	if finished.Timer != "25.00" || finished.TimerTone != ToneGold {
		t.Errorf("first finish timer = %q tone %d", finished.Timer, finished.TimerTone)
	}
	if finished.PersonalBest != "PB 25.00" || finished.SumOfBest != "SoB 25.00" {
		t.Errorf("footer = %q / %q", finished.PersonalBest, finished.SumOfBest)
	}
	if finished.Rows[1].Tone != ToneGold || finished.Rows[1].Cumulative != "25.00" || finished.Rows[1].Delta != "+0.00" {
		t.Errorf("closed row = %+v", finished.Rows[1])
	}

	state = trigger(state, 100*time.Second)
	state = reducer.Reduce(state, reducer.Tick{Now: 112 * time.Second})
	running := Build(state, false)
	if !running.Rows[0].Active || running.Rows[1].Active {
		t.Errorf("active flags = %v, %v", running.Rows[0].Active, running.Rows[1].Active)
	}
	if running.Rows[0].Tone != ToneBehind || running.TimerTone != ToneBehind {
		t.Errorf("slow split tone = %d, timer tone = %d", running.Rows[0].Tone, running.TimerTone)
	}
	if running.Rows[0].Delta != "+2" && running.Rows[0].Delta != "+2.00" {
		t.Errorf("delta = %q", running.Rows[0].Delta)
	}
	if running.Rows[1].SplitTime != "0:15" || running.Rows[1].Cumulative != "0:25" {
		t.Errorf("pending row shows bests %q / %q", running.Rows[1].SplitTime, running.Rows[1].Cumulative)
	}
	if running.Timer != "0:12" {
		t.Errorf("Timer = %q", running.Timer)
	}
	if got := Status(state); got != "Running · 1/2 · 0:12" {
		t.Errorf("Status = %q", got)
	}

	state = trigger(state, 130*time.Second)
	state = trigger(state, 140*time.Second)
	slower := Build(state, true)
	if slower.TimerTone != ToneNeutral || slower.Timer != "40.00" {
		t.Errorf("slower finish timer = %q tone %d", slower.Timer, slower.TimerTone)
	}
	if slower.Rows[1].Tone != ToneGold {
		t.Errorf("faster second split not gold: %+v", slower.Rows[1])
	}
	if got := Status(state); got != "Stopped · 2 attempts" {
		t.Errorf("Status = %q", got)
	}
}

func TestBuildNeedsPermission(t *testing.T) {
	state := model.NewTimerState(model.PhaseNeedsPermission, route())
	if !Build(state, true).NeedsPermission {
		t.Error("NeedsPermission not set")
	}
	if got := Status(state); got != "Waiting for key access" {
		t.Errorf("Status = %q", got)
	}
}
