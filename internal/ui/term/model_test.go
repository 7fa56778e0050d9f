package term

import (
	"strings"
	"testing"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/internal/core/reducer"
	"splitcaster/internal/core/timekeeper"
	"splitcaster/internal/ui/board"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeTimer struct {
	state   model.TimerState
	now     time.Duration
	presses int
}

func (timer *fakeTimer) SplitPressed() bool {
	timer.presses++
	timer.now += 10 * time.Second
	timer.state = reducer.Reduce(timer.state, reducer.SplitTrigger{At: timer.now, Now: timer.now})
	return true
}

func (timer *fakeTimer) Snapshot() model.TimerState {
	return timer.state
}

func newFakeTimer() *fakeTimer {
	route := model.Route{
		Name:     "Any%",
		GameName: "Test Game",
		Splits:   []model.Split{{Name: "Forest"}, {Name: "Castle"}},
	}
	return &fakeTimer{state: model.NewTimerState(model.PhaseStopped, route)}
}

func TestSplitKeysDriveTheTimer(t *testing.T) {
	timer := newFakeTimer()
	var m tea.Model = New(timer, nil, true)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if timer.presses != 1 {
		t.Fatalf("presses = %d, want 1", timer.presses)
	}
	if got := m.(Model).state.Phase; got != model.PhaseRunning {
		t.Errorf("Phase = %q, want running", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if timer.presses != 2 || m.(Model).state.Route.CurrentSplit != 1 {
		t.Errorf("presses = %d, current = %d", timer.presses, m.(Model).state.Route.CurrentSplit)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if timer.presses != 2 {
		t.Error("unbound key split the timer")
	}
}

func TestQuitAndPrecisionKeys(t *testing.T) {
	m := New(newFakeTimer(), nil, true)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if next.(Model).showHundredths || cmd != nil {
		t.Error("m did not toggle precision")
	}

	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestTimerEventsUpdateState(t *testing.T) {
	events := make(chan timekeeper.Event, 2)
	timer := newFakeTimer()
	m := New(timer, events, true)

	running := timer.state
	running.Phase = model.PhaseRunning
	events <- timekeeper.Event{Type: timekeeper.EventStateChange, State: running}

	msg := m.Init()()
	next, cmd := m.Update(msg)
	if next.(Model).state.Phase != model.PhaseRunning {
		t.Error("state change not applied")
	}
	if cmd == nil {
		t.Fatal("no follow-up wait command")
	}

	events <- timekeeper.Event{Type: timekeeper.EventSaveError, Message: "disk full", State: timer.state}
	next, _ = next.Update(cmd())
	if got := next.(Model).lastError; got != "save failed: disk full" {
		t.Errorf("lastError = %q", got)
	}
	if next.(Model).state.Phase != model.PhaseRunning {
		t.Error("save error replaced the state")
	}

	close(events)
	_, cmd = next.Update(waitForEvent(events)())
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("closed events did not quit")
	}
}

func TestViewShowsRowsAndTimer(t *testing.T) {
	timer := newFakeTimer()
	timer.SplitPressed()
	timer.SplitPressed()
	timer.SplitPressed()

	m := New(timer, nil, true)
	rendered := m.View()
	for _, want := range []string{"Test Game", "Any%", "Forest", "Castle", "20.00", "PB 20.00", goldMark, "split"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("View() missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	timer := newFakeTimer()
	timer.SplitPressed()
	timer.SplitPressed()
	timer.SplitPressed()

	summary := RenderSummary(board.Build(timer.state, true))
	for _, want := range []string{"Forest", "10.00", "PB 20.00", "SoB 20.00", "1 attempt"} {
		if !strings.Contains(summary, want) {
			t.Errorf("RenderSummary missing %q:\n%s", want, summary)
		}
	}
}
