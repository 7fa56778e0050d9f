package model

import "time"

// NullDuration is a duration or monotonic timestamp that may be absent.
type NullDuration struct {
	Duration time.Duration
	Valid    bool
}

// Some wraps a present value.
func Some(value time.Duration) NullDuration {
	return NullDuration{Duration: value, Valid: true}
}

// Sub returns value - other, invalid if either side is absent.
func (value NullDuration) Sub(other NullDuration) NullDuration {
	if !value.Valid || !other.Valid {
		return NullDuration{}
	}
	return Some(value.Duration - other.Duration)
}

// LessOrEqual reports value <= other. Absent values never compare.
func (value NullDuration) LessOrEqual(other NullDuration) bool {
	return value.Valid && other.Valid && value.Duration <= other.Duration
}

// Less reports value < other. Absent values never compare.
func (value NullDuration) Less(other NullDuration) bool {
	return value.Valid && other.Valid && value.Duration < other.Duration
}
