package main

import (
	"log"
	"sync"

	"splitcaster/internal/platform"
	"splitcaster/internal/platform/globalkey"
	"splitcaster/internal/ui/preferences"
)

type timerInput interface {
	SplitPressed() bool
	PermissionResult(granted bool)
}

// keyInput owns the active split key source. With the global hotkey enabled
// the key is captured system-wide and a failed registration is reported as
// missing permission; otherwise the focused splits window handles the key.
type keyInput struct {
	timer  timerInput
	window platform.KeySource

	mu     sync.Mutex
	global *globalkey.GlobalHotkey
}

func newKeyInput(timer timerInput, window platform.KeySource) *keyInput {
	return &keyInput{timer: timer, window: window}
}

// Apply switches to the source settings ask for. Must run on the main thread.
func (input *keyInput) Apply(settings preferences.Settings) {
	input.Stop()

	if !settings.GlobalHotkey {
		if err := input.window.Start(input.press); err != nil {
			log.Printf("window key source: %v", err)
		}
		input.timer.PermissionResult(true)
		return
	}

	global, err := globalkey.New(settings.SplitKey)
	if err != nil {
		log.Printf("global hotkey: %v", err)
		input.timer.PermissionResult(false)
		return
	}
	if err := global.Start(input.press); err != nil {
		log.Printf("global hotkey: %v", err)
		input.timer.PermissionResult(false)
		return
	}

	input.mu.Lock()
	input.global = global
	input.mu.Unlock()
	input.timer.PermissionResult(true)
}

// Stop detaches every key source.
func (input *keyInput) Stop() {
	input.mu.Lock()
	global := input.global
	input.global = nil
	input.mu.Unlock()

	if global != nil {
		global.Stop()
	}
	input.window.Stop()
}

func (input *keyInput) press() {
	input.timer.SplitPressed()
}
