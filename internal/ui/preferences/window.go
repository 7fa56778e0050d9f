package preferences

import (
	"strconv"
	"strings"

	"splitcaster/internal/platform"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Form holds the raw values of the preferences window.
type Form struct {
	RouteFile        string
	SplitKey         string
	TickRate         string
	GlobalHotkey     bool
	WatchRouteFile   bool
	ShowMilliseconds bool
}

// Apply returns settings updated from form. Invalid entries keep the
// previous value.
func (form Form) Apply(settings Settings) Settings {
	settings.RouteFile = strings.TrimSpace(form.RouteFile)
	if key := platform.NormalizeKeyName(form.SplitKey); isSupportedKey(key) {
		settings.SplitKey = key
	}
	if rate, ok := parsePositiveInt(form.TickRate); ok && rate <= 120 {
		settings.TickRate = rate
	}
	settings.GlobalHotkey = form.GlobalHotkey
	settings.WatchRouteFile = form.WatchRouteFile
	settings.ShowMilliseconds = form.ShowMilliseconds
	return settings
}

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	routeFile    *widget.Entry
	splitKey     *widget.Select
	tickRate     *widget.Entry
	globalHotkey *widget.Check
	watchRoute   *widget.Check
	hundredths   *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("SplitCaster Settings")

	routeFile := widget.NewEntry()
	routeFile.SetPlaceHolder("route.yaml in the settings folder")
	browse := widget.NewButton("Browse...", nil)

	splitKey := widget.NewSelect(platform.SupportedKeys(), nil)
	tickRate := widget.NewEntry()

	globalHotkey := widget.NewCheck("Split while other windows are focused", nil)
	watchRoute := widget.NewCheck("Reload the route file when it changes", nil)
	hundredths := widget.NewCheck("Show hundredths of a second", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Route", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, nil, browse, routeFile),
		watchRoute,
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Split key"), splitKey),
		globalHotkey,
		container.NewHBox(widget.NewLabel("Refresh rate"), tickRate, widget.NewLabel("Hz")),
		hundredths,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(440, 360))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		routeFile:    routeFile,
		splitKey:     splitKey,
		tickRate:     tickRate,
		globalHotkey: globalHotkey,
		watchRoute:   watchRoute,
		hundredths:   hundredths,
	}
	prefs.UpdateSettings(settings)

	browse.OnTapped = func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			_ = reader.Close()
			routeFile.SetText(reader.URI().Path())
		}, window)
	}
	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.routeFile.SetText(settings.RouteFile)
	prefs.splitKey.SetSelected(settings.SplitKey)
	prefs.tickRate.SetText(strconv.Itoa(settings.TickRate))
	prefs.globalHotkey.SetChecked(settings.GlobalHotkey)
	prefs.watchRoute.SetChecked(settings.WatchRouteFile)
	prefs.hundredths.SetChecked(settings.ShowMilliseconds)
}

func (prefs *Window) handleSave() {
	settings := Form{
		RouteFile:        prefs.routeFile.Text,
		SplitKey:         prefs.splitKey.Selected,
		TickRate:         prefs.tickRate.Text,
		GlobalHotkey:     prefs.globalHotkey.Checked,
		WatchRouteFile:   prefs.watchRoute.Checked,
		ShowMilliseconds: prefs.hundredths.Checked,
	}.Apply(prefs.settings)

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func isSupportedKey(name string) bool {
	for _, supported := range platform.SupportedKeys() {
		if supported == name {
			return true
		}
	}
	return false
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
