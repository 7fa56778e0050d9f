package main

import (
	"testing"

	"splitcaster/internal/ui/preferences"
)

type fakeTimer struct {
	presses     int
	permissions []bool
}

func (timer *fakeTimer) SplitPressed() bool {
	timer.presses++
	return true
}

func (timer *fakeTimer) PermissionResult(granted bool) {
	timer.permissions = append(timer.permissions, granted)
}

type fakeSource struct {
	onPress func()
	stops   int
}

func (source *fakeSource) Start(onPress func()) error {
	source.onPress = onPress
	return nil
}

func (source *fakeSource) Stop() {
	source.onPress = nil
	source.stops++
}

func TestKeyInputUsesWindowWithoutGlobalHotkey(t *testing.T) {
	timer := &fakeTimer{}
	window := &fakeSource{}
	input := newKeyInput(timer, window)

	settings := preferences.DefaultSettings()
	settings.GlobalHotkey = false
	input.Apply(settings)

	if window.onPress == nil {
		t.Fatal("window source not started")
	}
	window.onPress()
	if timer.presses != 1 {
		t.Errorf("presses = %d, want 1", timer.presses)
	}
	if len(timer.permissions) != 1 || !timer.permissions[0] {
		t.Errorf("permissions = %v, want [true]", timer.permissions)
	}

	input.Stop()
	if window.onPress != nil {
		t.Error("window source still attached after Stop")
	}
}

func TestKeyInputRejectsUnknownGlobalKey(t *testing.T) {
	timer := &fakeTimer{}
	window := &fakeSource{}
	input := newKeyInput(timer, window)

	settings := preferences.DefaultSettings()
	settings.GlobalHotkey = true
	settings.SplitKey = "hyper"
	input.Apply(settings)

	if len(timer.permissions) != 1 || timer.permissions[0] {
		t.Errorf("permissions = %v, want [false]", timer.permissions)
	}
	if window.onPress != nil {
		t.Error("window source started while the global hotkey is enabled")
	}
}
