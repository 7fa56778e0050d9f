package model

// Split is one named, timed segment of a route.
//
// The same type serves as the persisted template (Name, Icon, BestElapsed) and
// as the per-run instance carrying timestamps and derived flags.
type Split struct {
	Name        string
	Icon        string
	BestElapsed NullDuration

	StartTime    NullDuration
	EndTime      NullDuration
	RunStartTime NullDuration

	// IsGold and IsAheadOfPace are meaningless while Elapsed is invalid.
	IsGold        bool
	IsAheadOfPace bool
}

// Elapsed is EndTime - StartTime.
func (split Split) Elapsed() NullDuration {
	return split.EndTime.Sub(split.StartTime)
}

// CumulativeElapsed is EndTime - RunStartTime.
func (split Split) CumulativeElapsed() NullDuration {
	return split.EndTime.Sub(split.RunStartTime)
}

// Reset returns the template part of the split with run data cleared.
func (split Split) Reset() Split {
	return Split{
		Name:        split.Name,
		Icon:        split.Icon,
		BestElapsed: split.BestElapsed,
	}
}
