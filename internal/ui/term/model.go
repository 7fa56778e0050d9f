package term

import (
	"splitcaster/internal/core/model"
	"splitcaster/internal/core/timekeeper"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Timer is the part of the TimeKeeper the terminal drives.
type Timer interface {
	SplitPressed() bool
	Snapshot() model.TimerState
}

// timerEventMsg wraps a TimeKeeper event.
type timerEventMsg timekeeper.Event

// eventsClosedMsg signals the TimeKeeper stopped.
type eventsClosedMsg struct{}

// Model is the bubbletea model of the terminal timer.
type Model struct {
	timer  Timer
	events <-chan timekeeper.Event
	keys   keyMap
	help   help.Model

	state          model.TimerState
	showHundredths bool
	width          int
	lastError      string
}

// New creates the terminal model. Presses in the terminal are the key
// source, so the timer never waits for permission here.
func New(timer Timer, events <-chan timekeeper.Event, showHundredths bool) Model {
	return Model{
		timer:          timer,
		events:         events,
		keys:           defaultKeyMap(),
		help:           help.New(),
		state:          timer.Snapshot(),
		showHundredths: showHundredths,
		width:          60,
	}
}

// Init starts listening for timer events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// waitForEvent blocks on the event channel and returns the next message.
func waitForEvent(ch <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return timerEventMsg(event)
	}
}

// Update handles all incoming bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case timerEventMsg:
		if msg.Type == timekeeper.EventSaveError {
			m.lastError = "save failed: " + msg.Message
		} else {
			m.state = msg.State
		}
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Split):
		m.timer.SplitPressed()
		m.state = m.timer.Snapshot()
	case key.Matches(msg, m.keys.Precision):
		m.showHundredths = !m.showHundredths
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}
