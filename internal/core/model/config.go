package model

import "time"

// TimeKeeperConfig contains runtime settings for the TimeKeeper driver.
type TimeKeeperConfig struct {
	TickInterval   time.Duration
	MinSplitGap    time.Duration
	SaveRetryDelay time.Duration
}

// TickIntervalForRate converts a refresh rate in Hz to a tick interval.
// Rates are clamped to [1, 120].
func TickIntervalForRate(hz int) time.Duration {
	if hz < 1 {
		hz = 1
	}
	if hz > 120 {
		hz = 120
	}
	return time.Second / time.Duration(hz)
}
