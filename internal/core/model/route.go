package model

import (
	"errors"
	"fmt"
	"time"
)

// Route is the ordered list of splits for a speedrun category plus the
// best run ever recorded and the bookkeeping of the run in progress.
type Route struct {
	Name         string
	GameName     string
	Platform     string
	AttemptCount int

	Splits  []Split
	BestRun []Split

	// CurrentSplit and CurrentRun are never persisted.
	CurrentSplit int
	CurrentRun   []Split
}

// Clone returns a deep copy so the result can be modified without touching
// the receiver's slices.
func (route Route) Clone() Route {
	clone := route
	clone.Splits = cloneSplits(route.Splits)
	clone.BestRun = cloneSplits(route.BestRun)
	clone.CurrentRun = cloneSplits(route.CurrentRun)
	return clone
}

// Seeded returns a copy with CurrentRun rebuilt from the templates.
func (route Route) Seeded() Route {
	seeded := route.Clone()
	seeded.CurrentSplit = 0
	seeded.CurrentRun = FreshRun(seeded.Splits)
	return seeded
}

// FreshRun returns reset copies of the given templates.
func FreshRun(templates []Split) []Split {
	run := make([]Split, len(templates))
	for index, split := range templates {
		run[index] = split.Reset()
	}
	return run
}

// Validate checks the route identity and template list.
func (route Route) Validate() error {
	var errs []error
	if len(route.Splits) == 0 {
		errs = append(errs, errors.New("route has no splits"))
	}
	for index, split := range route.Splits {
		if split.Name == "" {
			errs = append(errs, fmt.Errorf("split %d has an empty name", index))
		}
	}
	if route.AttemptCount < 0 {
		errs = append(errs, fmt.Errorf("attempt count %d is negative", route.AttemptCount))
	}
	if route.BestRun != nil && len(route.BestRun) != len(route.Splits) {
		errs = append(errs, fmt.Errorf("best run has %d splits, route has %d", len(route.BestRun), len(route.Splits)))
	}
	return errors.Join(errs...)
}

// SumOfBest adds up every split's best elapsed time. It is invalid until
// every split has a best time.
func (route Route) SumOfBest() NullDuration {
	if len(route.Splits) == 0 {
		return NullDuration{}
	}
	var total time.Duration
	for _, split := range route.Splits {
		if !split.BestElapsed.Valid {
			return NullDuration{}
		}
		total += split.BestElapsed.Duration
	}
	return Some(total)
}

// HasBestRun reports whether BestRun is a finished run usable for
// comparisons: one entry per split, each with a start and an end.
func (route Route) HasBestRun() bool {
	return len(route.Splits) > 0 && len(route.BestRun) == len(route.Splits) && CompleteRun(route.BestRun)
}

// CompleteRun reports whether every split of run was started and closed.
func CompleteRun(run []Split) bool {
	if len(run) == 0 {
		return false
	}
	for _, split := range run {
		if !split.StartTime.Valid || !split.EndTime.Valid || split.EndTime.Duration < split.StartTime.Duration {
			return false
		}
	}
	return true
}

// TotalTime is the time from the first split's start to the end of the last
// split that has one. For a finished run it is the run time.
func TotalTime(run []Split) NullDuration {
	if len(run) == 0 {
		return NullDuration{}
	}
	for index := len(run) - 1; index >= 0; index-- {
		if run[index].EndTime.Valid {
			return run[index].EndTime.Sub(run[0].StartTime)
		}
	}
	return NullDuration{}
}

// TotalTimeUpTo is the time from the first split's start to the end of the
// split at index.
func TotalTimeUpTo(run []Split, index int) NullDuration {
	if index < 0 || index >= len(run) {
		return NullDuration{}
	}
	return run[index].EndTime.Sub(run[0].StartTime)
}

func cloneSplits(splits []Split) []Split {
	if splits == nil {
		return nil
	}
	return append([]Split(nil), splits...)
}

// CurrentRunIsBest reports whether the finished current run is the recorded
// best run, i.e. the run that has just set a personal best.
func (route Route) CurrentRunIsBest() bool {
	if len(route.BestRun) == 0 || len(route.BestRun) != len(route.CurrentRun) {
		return false
	}
	last := len(route.BestRun) - 1
	return route.CurrentRun[last].EndTime.Valid &&
		route.BestRun[0].StartTime == route.CurrentRun[0].StartTime &&
		route.BestRun[last].EndTime == route.CurrentRun[last].EndTime
}

// AdoptRunResults carries what finished earned onto edited, a version of the
// route that changed on disk while the run was in progress. Split bests are
// matched by name and only ever improve. The best run and the finished run
// itself are kept only when both routes have the same split names.
func AdoptRunResults(edited, finished Route) Route {
	result := edited.Clone()
	if finished.AttemptCount > result.AttemptCount {
		result.AttemptCount = finished.AttemptCount
	}

	used := make([]bool, len(finished.Splits))
	for index := range result.Splits {
		for candidate, split := range finished.Splits {
			if used[candidate] || split.Name != result.Splits[index].Name {
				continue
			}
			used[candidate] = true
			if !split.BestElapsed.Valid {
				break
			}
			if !result.Splits[index].BestElapsed.Valid || split.BestElapsed.Less(result.Splits[index].BestElapsed) {
				result.Splits[index].BestElapsed = split.BestElapsed
			}
			break
		}
	}

	if !sameSplitNames(result.Splits, finished.Splits) {
		return result.Seeded()
	}
	if finished.HasBestRun() &&
		(!result.HasBestRun() || TotalTime(finished.BestRun).Less(TotalTime(result.BestRun))) {
		result.BestRun = cloneSplits(finished.BestRun)
	}
	result.CurrentRun = cloneSplits(finished.CurrentRun)
	result.CurrentSplit = finished.CurrentSplit
	return result
}

func sameSplitNames(a, b []Split) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index].Name != b[index].Name {
			return false
		}
	}
	return true
}
