package platform

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	for _, name := range []string{"SplitCaster", "SplitCaster-test", ""} {
		port := portFromName(name)
		if port < 20000 || port > 39999 {
			t.Errorf("portFromName(%q) = %d, out of range", name, port)
		}
		if again := portFromName(name); again != port {
			t.Errorf("portFromName(%q) not stable: %d then %d", name, port, again)
		}
	}
}

func TestSingleInstanceActivatesHolder(t *testing.T) {
	name := "SplitCaster-test-" + time.Now().Format("150405.000000")
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			t.Skipf("port busy: %v", err)
		}
		t.Fatalf("AcquireSingleInstance: %v", err)
	}
	activated := make(chan struct{}, 1)
	guard.OnActivate(func() {
		activated <- struct{}{}
	})

	if _, err := AcquireSingleInstance(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire error = %v, want ErrAlreadyRunning", err)
	}
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Error("holder was not activated")
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := AcquireSingleInstance(name)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestNormalizeKeyName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Space", want: "space"},
		{input: " RETURN ", want: "enter"},
		{input: "Esc", want: "escape"},
		{input: "", want: "space"},
		{input: "F12", want: "f12"},
	}
	for _, tt := range tests {
		if got := NormalizeKeyName(tt.input); got != tt.want {
			t.Errorf("NormalizeKeyName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSupportedKeysAreNormalized(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range SupportedKeys() {
		if NormalizeKeyName(name) != name {
			t.Errorf("%q is not normalized", name)
		}
		if seen[name] {
			t.Errorf("%q listed twice", name)
		}
		seen[name] = true
	}
}

func TestAppConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir, err := NewService().AppConfigDir("SplitCaster")
	if err != nil {
		t.Fatalf("AppConfigDir: %v", err)
	}
	if !strings.HasSuffix(dir, "SplitCaster") {
		t.Errorf("AppConfigDir = %q", dir)
	}
}
