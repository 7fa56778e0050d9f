// Package splits draws the timer window: a header, one row per split, the
// run timer and the PB / sum-of-best footer. Before key capture is granted
// it shows a permission screen instead.
package splits

import (
	"fmt"
	"image/color"
	"sync"

	"splitcaster/internal/core/model"
	"splitcaster/internal/platform"
	"splitcaster/internal/ui/board"
	"splitcaster/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	colorBackground = color.NRGBA{R: 24, G: 27, B: 34, A: 255}
	colorActive     = color.NRGBA{R: 46, G: 52, B: 66, A: 255}
	colorFlash      = color.NRGBA{R: 110, G: 88, B: 20, A: 255}
	colorNeutral    = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	colorMuted      = color.NRGBA{R: 150, G: 156, B: 168, A: 255}
	colorGold       = color.NRGBA{R: 245, G: 197, B: 66, A: 255}
	colorAhead      = color.NRGBA{R: 76, G: 194, B: 107, A: 255}
	colorBehind     = color.NRGBA{R: 224, G: 82, B: 82, A: 255}
)

const permissionText = "SplitCaster needs permission to listen for the split key while " +
	"other applications are focused. Grant keyboard access to SplitCaster in your " +
	"system settings, or turn off the global hotkey in Preferences to split only " +
	"while this window has focus."

type rowWidgets struct {
	background *canvas.Rectangle
	icon       *canvas.Image
	name       *canvas.Text
	delta      *canvas.Text
	split      *canvas.Text
	cumulative *canvas.Text
	iconName   string
	active     bool
	flashing   bool
}

// Window manages the splits UI.
type Window struct {
	window fyne.Window

	game     *canvas.Text
	category *canvas.Text
	attempts *canvas.Text
	rowsBox  *fyne.Container
	rows     []*rowWidgets
	timer    *canvas.Text
	pb       *canvas.Text
	sob      *canvas.Text

	timerView      fyne.CanvasObject
	permissionView fyne.CanvasObject
	checkAgain     *widget.Button

	mu             sync.Mutex
	showHundredths bool
	key            fyne.KeyName
	onPress        func()
	onCheckAgain   func()
}

// New creates the splits window. It is not shown.
func New(app fyne.App, title string, showHundredths bool) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	game := newText("", 18, colorNeutral, true)
	game.Alignment = fyne.TextAlignCenter
	category := newText("", 13, colorMuted, false)
	category.Alignment = fyne.TextAlignCenter
	attempts := newText("", 12, colorMuted, false)
	attempts.Alignment = fyne.TextAlignTrailing

	timer := newText("0.00", 42, colorNeutral, true)
	timer.Alignment = fyne.TextAlignTrailing
	timer.TextStyle.Monospace = true
	pb := newText("", 13, colorMuted, false)
	sob := newText("", 13, colorMuted, false)
	sob.Alignment = fyne.TextAlignTrailing

	rowsBox := container.NewVBox()
	header := container.NewVBox(game, category, attempts)
	footer := container.NewVBox(timer, container.NewGridWithColumns(2, pb, sob))
	timerView := container.NewBorder(header, footer, nil, nil, container.NewVScroll(rowsBox))

	explanation := widget.NewLabel(permissionText)
	explanation.Wrapping = fyne.TextWrapWord
	checkAgain := widget.NewButton("Check again", nil)
	permissionView := container.NewVBox(
		widget.NewLabelWithStyle("Key access required", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		explanation,
		checkAgain,
	)
	permissionView.Hide()

	root := container.NewStack(canvas.NewRectangle(colorBackground), container.NewPadded(container.NewStack(timerView, permissionView)))
	window.SetContent(root)
	window.Resize(fyne.NewSize(360, 520))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	splits := &Window{
		window:         window,
		game:           game,
		category:       category,
		attempts:       attempts,
		rowsBox:        rowsBox,
		timer:          timer,
		pb:             pb,
		sob:            sob,
		timerView:      timerView,
		permissionView: permissionView,
		checkAgain:     checkAgain,
		showHundredths: showHundredths,
	}
	checkAgain.OnTapped = func() {
		splits.mu.Lock()
		handler := splits.onCheckAgain
		splits.mu.Unlock()
		if handler != nil {
			handler()
		}
	}
	if deskCanvas, ok := window.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(splits.handleKeyDown)
	}
	return splits
}

// Show displays the window.
func (splits *Window) Show() {
	splits.window.Show()
	splits.window.RequestFocus()
}

// Hide hides the window without quitting.
func (splits *Window) Hide() {
	splits.window.Hide()
}

// SetOnCheckAgain sets the permission screen's retry handler.
func (splits *Window) SetOnCheckAgain(handler func()) {
	splits.mu.Lock()
	splits.onCheckAgain = handler
	splits.mu.Unlock()
}

// SetShowHundredths switches time precision from the next update on.
func (splits *Window) SetShowHundredths(show bool) {
	splits.mu.Lock()
	splits.showHundredths = show
	splits.mu.Unlock()
}

// SetSplitKey selects the key handled while the window has focus.
func (splits *Window) SetSplitKey(keyName string) error {
	key, ok := fyneKey(keyName)
	if !ok {
		return fmt.Errorf("%w: %q", platform.ErrUnsupportedKey, keyName)
	}
	splits.mu.Lock()
	splits.key = key
	splits.mu.Unlock()
	return nil
}

// Start makes the focused window a key source. It never needs permission.
func (splits *Window) Start(onPress func()) error {
	splits.mu.Lock()
	defer splits.mu.Unlock()
	if splits.key == "" {
		splits.key = fyne.KeySpace
	}
	splits.onPress = onPress
	return nil
}

// Stop detaches the focused key source.
func (splits *Window) Stop() {
	splits.mu.Lock()
	splits.onPress = nil
	splits.mu.Unlock()
}

// Update redraws the window for state. Safe from any goroutine.
func (splits *Window) Update(state model.TimerState) {
	splits.mu.Lock()
	showHundredths := splits.showHundredths
	splits.mu.Unlock()

	view := board.Build(state, showHundredths)
	fyne.Do(func() {
		splits.apply(view)
	})
}

// SetHighlight switches the gold flash of a row. Safe from any goroutine.
func (splits *Window) SetHighlight(row int, on bool) {
	fyne.Do(func() {
		if row < 0 || row >= len(splits.rows) {
			return
		}
		splits.rows[row].flashing = on
		splits.paintRow(splits.rows[row])
	})
}

func (splits *Window) handleKeyDown(event *fyne.KeyEvent) {
	splits.mu.Lock()
	handler := splits.onPress
	matches := event != nil && event.Name == splits.key
	splits.mu.Unlock()
	if matches && handler != nil {
		handler()
	}
}

func (splits *Window) apply(view board.Board) {
	if view.NeedsPermission {
		splits.timerView.Hide()
		splits.permissionView.Show()
	} else {
		splits.permissionView.Hide()
		splits.timerView.Show()
	}

	setText(splits.game, view.Game)
	setText(splits.category, view.Category)
	setText(splits.attempts, view.Attempts)
	setText(splits.pb, view.PersonalBest)
	setText(splits.sob, view.SumOfBest)
	splits.timer.Color = toneColor(view.TimerTone, colorNeutral)
	setText(splits.timer, view.Timer)

	if len(view.Rows) != len(splits.rows) {
		splits.rebuildRows(len(view.Rows))
	}
	for index, row := range view.Rows {
		widgets := splits.rows[index]
		if widgets.iconName != row.Icon || widgets.icon.Resource == nil {
			widgets.iconName = row.Icon
			widgets.icon.Resource = resources.IconOrFallback(row.Icon)
			widgets.icon.Refresh()
		}
		setText(widgets.name, row.Name)
		widgets.delta.Color = toneColor(row.Tone, colorMuted)
		setText(widgets.delta, row.Delta)
		widgets.split.Color = toneColor(row.Tone, colorMuted)
		setText(widgets.split, row.SplitTime)
		setText(widgets.cumulative, row.Cumulative)
		widgets.active = row.Active
		splits.paintRow(widgets)
	}
}

func (splits *Window) rebuildRows(count int) {
	splits.rows = make([]*rowWidgets, count)
	objects := make([]fyne.CanvasObject, count)
	for index := range splits.rows {
		widgets := &rowWidgets{
			background: canvas.NewRectangle(color.Transparent),
			icon:       canvas.NewImageFromResource(nil),
			name:       newText("", 14, colorNeutral, false),
			delta:      newText("", 13, colorMuted, false),
			split:      newText("", 13, colorMuted, false),
			cumulative: newText("", 14, colorNeutral, false),
		}
		widgets.icon.FillMode = canvas.ImageFillContain
		for _, cell := range []*canvas.Text{widgets.delta, widgets.split, widgets.cumulative} {
			cell.Alignment = fyne.TextAlignTrailing
			cell.TextStyle.Monospace = true
		}
		splits.rows[index] = widgets
		objects[index] = container.New(&rowLayout{},
			widgets.background, widgets.icon, widgets.name, widgets.delta, widgets.split, widgets.cumulative)
	}
	splits.rowsBox.Objects = objects
	splits.rowsBox.Refresh()
}

func (splits *Window) paintRow(widgets *rowWidgets) {
	var fill color.Color = color.Transparent
	switch {
	case widgets.flashing:
		fill = colorFlash
	case widgets.active:
		fill = colorActive
	}
	if widgets.background.FillColor != fill {
		widgets.background.FillColor = fill
		widgets.background.Refresh()
	}
}

func toneColor(tone board.Tone, neutral color.Color) color.Color {
	switch tone {
	case board.ToneGold:
		return colorGold
	case board.ToneAhead:
		return colorAhead
	case board.ToneBehind:
		return colorBehind
	default:
		return neutral
	}
}

func newText(text string, size float32, fill color.Color, bold bool) *canvas.Text {
	label := canvas.NewText(text, fill)
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}

func setText(label *canvas.Text, text string) {
	label.Text = text
	label.Refresh()
}
