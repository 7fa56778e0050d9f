package splits

import (
	"errors"
	"testing"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/internal/platform"
	"splitcaster/internal/ui/board"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
)

func TestFyneKey(t *testing.T) {
	tests := []struct {
		input string
		want  fyne.KeyName
		ok    bool
	}{
		{input: "space", want: fyne.KeySpace, ok: true},
		{input: "Return", want: fyne.KeyReturn, ok: true},
		{input: "f5", want: fyne.KeyF5, ok: true},
		{input: "q", want: fyne.KeyQ, ok: true},
		{input: "0", want: fyne.Key0, ok: true},
		{input: "f42"},
		{input: "hyper"},
	}
	for _, tt := range tests {
		got, ok := fyneKey(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("fyneKey(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRowLayoutKeepsTimeColumnsAligned(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	objects := []fyne.CanvasObject{
		canvas.NewRectangle(nil),
		canvas.NewRectangle(nil),
		canvas.NewText("Forest", nil),
		canvas.NewText("+1.20", nil),
		canvas.NewText("12.00", nil),
		canvas.NewText("1:02.00", nil),
	}
	layout := &rowLayout{}
	size := fyne.NewSize(400, 30)
	layout.Layout(objects, size)

	if objects[0].Size() != size {
		t.Errorf("background size = %v, want %v", objects[0].Size(), size)
	}
	last := objects[5]
	if right := last.Position().X + last.Size().Width; right != size.Width-rowPadding {
		t.Errorf("last column ends at %v, want %v", right, size.Width-rowPadding)
	}
	for index := 3; index < 5; index++ {
		if objects[index].Position().X >= objects[index+1].Position().X {
			t.Errorf("column %d not left of column %d", index, index+1)
		}
		if objects[index].Size().Width != last.Size().Width {
			t.Errorf("column %d width %v differs from %v", index, objects[index].Size().Width, last.Size().Width)
		}
	}
	name := objects[2]
	if name.Position().X+name.Size().Width > objects[3].Position().X {
		t.Error("name overlaps the delta column")
	}
	if min := layout.MinSize(objects); min.Width > size.Width || min.Height <= 0 {
		t.Errorf("MinSize = %v", min)
	}
}

func TestWindowKeySourceAndRows(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	window := New(app, "SplitCaster", true)
	if err := window.SetSplitKey("nope"); !errors.Is(err, platform.ErrUnsupportedKey) {
		t.Errorf("SetSplitKey error = %v", err)
	}
	if err := window.SetSplitKey("enter"); err != nil {
		t.Fatal(err)
	}

	presses := 0
	if err := window.Start(func() { presses++ }); err != nil {
		t.Fatal(err)
	}
	window.handleKeyDown(&fyne.KeyEvent{Name: fyne.KeySpace})
	window.handleKeyDown(&fyne.KeyEvent{Name: fyne.KeyReturn})
	window.Stop()
	window.handleKeyDown(&fyne.KeyEvent{Name: fyne.KeyReturn})
	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}

	route := model.Route{Name: "Any%", GameName: "Game", Splits: []model.Split{{Name: "A"}, {Name: "B"}, {Name: "C"}}}
	state := model.NewTimerState(model.PhaseRunning, route)
	state.Route.CurrentRun[0].StartTime = model.Some(0)
	state.Route.CurrentRun[0].RunStartTime = model.Some(0)
	state.Route.CurrentRun[0].EndTime = model.Some(1500 * time.Millisecond)
	state.Route.CurrentRun[0].IsAheadOfPace = true

	window.apply(board.Build(state, true))
	if len(window.rows) != 3 || len(window.rowsBox.Objects) != 3 {
		t.Fatalf("rows = %d, objects = %d", len(window.rows), len(window.rowsBox.Objects))
	}
	if window.timer.Text != "1.50" || window.timer.Color != colorAhead {
		t.Errorf("timer = %q %v", window.timer.Text, window.timer.Color)
	}
	if window.rows[0].background.FillColor != colorActive {
		t.Error("active row not highlighted")
	}
	if window.permissionView.Visible() {
		t.Error("permission screen shown while running")
	}

	window.rows[1].flashing = true
	window.paintRow(window.rows[1])
	if window.rows[1].background.FillColor != colorFlash {
		t.Error("flashing row not painted")
	}

	window.apply(board.Build(model.NewTimerState(model.PhaseNeedsPermission, route), true))
	if !window.permissionView.Visible() || window.timerView.Visible() {
		t.Error("permission screen not shown")
	}
}
