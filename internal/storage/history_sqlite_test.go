package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/internal/core/timekeeper"
)

func finishedRoute(start, firstEnd, secondEnd time.Duration, personalBest bool) model.Route {
	route := sampleRoute()
	route.CurrentRun[0].StartTime = model.Some(start)
	route.CurrentRun[0].RunStartTime = model.Some(start)
	route.CurrentRun[0].EndTime = model.Some(firstEnd)
	route.CurrentRun[0].IsGold = true
	route.CurrentRun[1].StartTime = model.Some(firstEnd)
	route.CurrentRun[1].RunStartTime = model.Some(start)
	route.CurrentRun[1].EndTime = model.Some(secondEnd)
	route.CurrentSplit = 1
	if personalBest {
		route.BestRun = append([]model.Split(nil), route.CurrentRun...)
	}
	return route
}

func TestAttemptFromRun(t *testing.T) {
	attempt := AttemptFromRun(finishedRoute(time.Minute, time.Minute+8*time.Second, time.Minute+20*time.Second, true), time.Now())
	if attempt.ID == "" || attempt.Route != "Any%" || attempt.Game != "Test Game" {
		t.Errorf("identity = %+v", attempt)
	}
	if attempt.Total != model.Some(20*time.Second) {
		t.Errorf("Total = %+v, want 20s", attempt.Total)
	}
	if !attempt.PersonalBest || attempt.Golds != 1 {
		t.Errorf("PersonalBest = %v, Golds = %d", attempt.PersonalBest, attempt.Golds)
	}
	if got := attempt.Splits[1].Cumulative; got != model.Some(20*time.Second) {
		t.Errorf("cumulative = %+v", got)
	}

	slower := AttemptFromRun(finishedRoute(time.Minute, time.Minute+30*time.Second, 2*time.Minute, false), time.Now())
	if slower.PersonalBest {
		t.Error("slower run marked as personal best")
	}
	if slower.ID == attempt.ID {
		t.Error("attempt ids repeat")
	}
}

func TestHistoryRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	history, err := OpenHistory(filepath.Join(t.TempDir(), "SplitCaster", historyFileName))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer history.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := AttemptFromRun(finishedRoute(0, 8*time.Second, 20*time.Second, true), base)
	second := AttemptFromRun(finishedRoute(0, 9*time.Second, 25*time.Second, false), base.Add(time.Hour))
	other := AttemptFromRun(finishedRoute(0, time.Second, 2*time.Second, true), base.Add(2*time.Hour))
	other.Route = "100%"

	for _, attempt := range []Attempt{first, second, other} {
		if err := history.Record(ctx, attempt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	attempts, err := history.Recent(ctx, "Any%", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(attempts))
	}
	if attempts[0].ID != second.ID || attempts[1].ID != first.ID {
		t.Errorf("order = %s, %s", attempts[0].ID, attempts[1].ID)
	}
	if !attempts[0].FinishedAt.Equal(second.FinishedAt) || attempts[0].Total != model.Some(25*time.Second) {
		t.Errorf("attempt = %+v", attempts[0])
	}
	if len(attempts[1].Splits) != 2 || !attempts[1].Splits[0].Gold || attempts[1].Splits[0].Elapsed != model.Some(8*time.Second) {
		t.Errorf("splits = %+v", attempts[1].Splits)
	}

	all, err := history.Recent(ctx, "", 1)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 1 || all[0].Route != "100%" {
		t.Errorf("Recent(all, 1) = %+v", all)
	}
}

func TestRecentOrdersWithinOneSecond(t *testing.T) {
	ctx := context.Background()
	history, err := OpenHistory(filepath.Join(t.TempDir(), historyFileName))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer history.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	whole := AttemptFromRun(finishedRoute(0, 8*time.Second, 20*time.Second, false), base)
	later := AttemptFromRun(finishedRoute(0, 9*time.Second, 25*time.Second, false), base.Add(100*time.Millisecond))
	latest := AttemptFromRun(finishedRoute(0, 9*time.Second, 26*time.Second, false), base.Add(900*time.Millisecond))

	for _, attempt := range []Attempt{latest, whole, later} {
		if err := history.Record(ctx, attempt); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	attempts, err := history.Recent(ctx, "Any%", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []string{latest.ID, later.ID, whole.ID}
	if len(attempts) != len(want) {
		t.Fatalf("got %d attempts, want %d", len(attempts), len(want))
	}
	for index, id := range want {
		if attempts[index].ID != id {
			t.Errorf("attempt %d finished at %v, out of order", index, attempts[index].FinishedAt)
		}
	}
	if !attempts[1].FinishedAt.Equal(later.FinishedAt) {
		t.Errorf("FinishedAt = %v, want %v", attempts[1].FinishedAt, later.FinishedAt)
	}
}

func TestRecordFinishedRuns(t *testing.T) {
	history, err := OpenHistory(filepath.Join(t.TempDir(), historyFileName))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer history.Close()

	keeper := timekeeper.New(model.NewTimerState(model.PhaseStopped, sampleRoute()), model.TimeKeeperConfig{TickInterval: time.Hour}, nil, nil)
	events := keeper.Subscribe(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		history.RecordFinishedRuns(context.Background(), events, func(err error) {
			t.Errorf("record: %v", err)
		})
	}()

	keeper.SplitAt(0)
	keeper.SplitAt(5 * time.Second)
	keeper.SplitAt(9 * time.Second)
	keeper.Stop()
	<-done

	attempts, err := history.Recent(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("recorded %d attempts, want 1", len(attempts))
	}
	if attempts[0].Total != model.Some(9*time.Second) || !attempts[0].PersonalBest {
		t.Errorf("attempt = %+v", attempts[0])
	}
}
