// Package globalkey captures the split key system-wide. On Linux the hotkey
// library opens the X display when the package is initialized, so only the
// desktop binary may import it.
package globalkey

import (
	"fmt"
	"sync"

	"splitcaster/internal/platform"

	"golang.design/x/hotkey"
)

// GlobalHotkey captures one key system-wide, without modifiers.
type GlobalHotkey struct {
	name string
	key  hotkey.Key

	mu     sync.Mutex
	hk     *hotkey.Hotkey
	stopCh chan struct{}
	done   chan struct{}
}

// New resolves keyName ("space", "enter", "f1", "a", "5", ...).
func New(keyName string) (*GlobalHotkey, error) {
	name := platform.NormalizeKeyName(keyName)
	key, ok := keyCodes()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", platform.ErrUnsupportedKey, keyName)
	}
	return &GlobalHotkey{name: name, key: key}, nil
}

// Name returns the normalized key name.
func (source *GlobalHotkey) Name() string {
	return source.name
}

// Start registers the hotkey. On macOS this must run on the main thread,
// which fyne's lifecycle OnStarted callback provides.
func (source *GlobalHotkey) Start(onPress func()) error {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.hk != nil {
		return nil
	}

	hk := hotkey.New(nil, source.key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register global hotkey %q: %w", source.name, err)
	}
	source.hk = hk
	source.stopCh = make(chan struct{})
	source.done = make(chan struct{})

	go func(keydown <-chan hotkey.Event, stopCh, done chan struct{}) {
		defer close(done)
		for {
			select {
			case <-stopCh:
				return
			case _, ok := <-keydown:
				if !ok {
					return
				}
				onPress()
			}
		}
	}(hk.Keydown(), source.stopCh, source.done)
	return nil
}

// Stop unregisters the hotkey. Safe to call when not started.
func (source *GlobalHotkey) Stop() {
	source.mu.Lock()
	hk, stopCh, done := source.hk, source.stopCh, source.done
	source.hk = nil
	source.mu.Unlock()

	if hk == nil {
		return
	}
	close(stopCh)
	<-done
	_ = hk.Unregister()
}

func keyCodes() map[string]hotkey.Key {
	return map[string]hotkey.Key{
		"space":  hotkey.KeySpace,
		"enter":  hotkey.KeyReturn,
		"tab":    hotkey.KeyTab,
		"escape": hotkey.KeyEscape,
		"delete": hotkey.KeyDelete,
		"left":   hotkey.KeyLeft,
		"right":  hotkey.KeyRight,
		"up":     hotkey.KeyUp,
		"down":   hotkey.KeyDown,
		"f1":     hotkey.KeyF1,
		"f2":     hotkey.KeyF2,
		"f3":     hotkey.KeyF3,
		"f4":     hotkey.KeyF4,
		"f5":     hotkey.KeyF5,
		"f6":     hotkey.KeyF6,
		"f7":     hotkey.KeyF7,
		"f8":     hotkey.KeyF8,
		"f9":     hotkey.KeyF9,
		"f10":    hotkey.KeyF10,
		"f11":    hotkey.KeyF11,
		"f12":    hotkey.KeyF12,
		"a":      hotkey.KeyA,
		"b":      hotkey.KeyB,
		"c":      hotkey.KeyC,
		"d":      hotkey.KeyD,
		"e":      hotkey.KeyE,
		"f":      hotkey.KeyF,
		"g":      hotkey.KeyG,
		"h":      hotkey.KeyH,
		"i":      hotkey.KeyI,
		"j":      hotkey.KeyJ,
		"k":      hotkey.KeyK,
		"l":      hotkey.KeyL,
		"m":      hotkey.KeyM,
		"n":      hotkey.KeyN,
		"o":      hotkey.KeyO,
		"p":      hotkey.KeyP,
		"q":      hotkey.KeyQ,
		"r":      hotkey.KeyR,
		"s":      hotkey.KeyS,
		"t":      hotkey.KeyT,
		"u":      hotkey.KeyU,
		"v":      hotkey.KeyV,
		"w":      hotkey.KeyW,
		"x":      hotkey.KeyX,
		"y":      hotkey.KeyY,
		"z":      hotkey.KeyZ,
		"0":      hotkey.Key0,
		"1":      hotkey.Key1,
		"2":      hotkey.Key2,
		"3":      hotkey.Key3,
		"4":      hotkey.Key4,
		"5":      hotkey.Key5,
		"6":      hotkey.Key6,
		"7":      hotkey.Key7,
		"8":      hotkey.Key8,
		"9":      hotkey.Key9,
	}
}
