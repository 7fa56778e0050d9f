package tray

import "testing"

func TestMenuReflectsState(t *testing.T) {
	reloads := 0
	manager := New(nil, Callbacks{OnReloadRoute: func() { reloads++ }})

	manager.SetStatus("Running · 2/5 · 1:23")
	manager.SetRunning(true)

	menu := manager.Menu()
	if menu.Items[0].Label != "Status: Running · 2/5 · 1:23" || !menu.Items[0].Disabled {
		t.Errorf("status item = %q disabled=%v", menu.Items[0].Label, menu.Items[0].Disabled)
	}
	var labels []string
	for _, item := range menu.Items {
		if !item.IsSeparator {
			labels = append(labels, item.Label)
		}
	}
	want := []string{"Status: Running · 2/5 · 1:23", "Show timer", "Preferences", "Reload route", "Quit"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for index := range want {
		if labels[index] != want[index] {
			t.Errorf("labels = %v, want %v", labels, want)
			break
		}
	}
	if !manager.reloadItem.Disabled {
		t.Error("reload enabled during a run")
	}

	manager.SetRunning(false)
	manager.reloadItem.Action()
	if manager.reloadItem.Disabled || reloads != 1 {
		t.Errorf("reload disabled=%v, calls=%d", manager.reloadItem.Disabled, reloads)
	}
}
