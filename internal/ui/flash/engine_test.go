package flash

import (
	"context"
	"sync"
	"testing"
	"time"
)

type change struct {
	row int
	on  bool
}

type recorder struct {
	mu      sync.Mutex
	changes []change
}

func (rec *recorder) set(row int, on bool) {
	rec.mu.Lock()
	rec.changes = append(rec.changes, change{row: row, on: on})
	rec.mu.Unlock()
}

func (rec *recorder) snapshot() []change {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]change(nil), rec.changes...)
}

func waitForChanges(t *testing.T, rec *recorder, count int) []change {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if changes := rec.snapshot(); len(changes) >= count {
			return changes
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d highlight changes, got %v", count, rec.snapshot())
	return nil
}

func TestPulseCycles(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{Cycles: 2, On: time.Millisecond, Off: time.Millisecond}, rec.set)
	engine.Pulse(context.Background(), 3)

	changes := waitForChanges(t, rec, 4)
	want := []change{{3, true}, {3, false}, {3, true}, {3, false}}
	for index, expected := range want {
		if changes[index] != expected {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
	time.Sleep(10 * time.Millisecond)
	if got := len(rec.snapshot()); got != 4 {
		t.Errorf("%d changes after the pulse ended", got)
	}

	engine.Stop()
	if got := len(rec.snapshot()); got != 4 {
		t.Error("Stop after a finished pulse touched the row")
	}
}

func TestPulseRestartSwitchesPreviousRowOff(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{Cycles: 1, On: time.Hour}, rec.set)

	engine.Pulse(context.Background(), 0)
	waitForChanges(t, rec, 1)
	engine.Pulse(context.Background(), 1)
	changes := waitForChanges(t, rec, 3)

	want := []change{{0, true}, {0, false}, {1, true}}
	for index, expected := range want {
		if changes[index] != expected {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}

	engine.Stop()
	changes = rec.snapshot()
	if last := changes[len(changes)-1]; last != (change{1, false}) {
		t.Errorf("last change = %v, want row 1 off", last)
	}
}

func TestPulseStopsWithContext(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{Cycles: 5, On: time.Hour}, rec.set)
	ctx, cancel := context.WithCancel(context.Background())
	engine.Pulse(ctx, 2)
	waitForChanges(t, rec, 1)
	cancel()
	changes := waitForChanges(t, rec, 2)
	if changes[1] != (change{2, false}) {
		t.Errorf("changes after cancel = %v, want row 2 switched off", changes)
	}
	time.Sleep(10 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 2 {
		t.Errorf("changes after cancel = %v", got)
	}
}
