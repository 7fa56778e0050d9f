package timekeeper

import "time"

// Clock supplies monotonic timestamps as offsets from an arbitrary epoch.
type Clock interface {
	Now() time.Duration
}

type monotonicClock struct {
	epoch time.Time
}

// NewMonotonicClock returns a clock backed by the runtime's monotonic
// reading, so wall-clock adjustments never move split times.
func NewMonotonicClock() Clock {
	return &monotonicClock{epoch: time.Now()}
}

func (clock *monotonicClock) Now() time.Duration {
	return time.Since(clock.epoch)
}
