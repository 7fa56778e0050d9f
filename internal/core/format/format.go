// Package format renders run durations for display.
package format

import (
	"fmt"
	"time"

	"splitcaster/internal/core/model"
)

const missing = "-"

// HMS formats as H:MM:SS, dropping hours under an hour ("0:05", "12:34",
// "1:02:03"). Absent durations render as "-".
func HMS(value model.NullDuration) string {
	if !value.Valid {
		return missing
	}
	sign, hours, minutes, seconds, _ := split(value.Duration)
	if hours > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, hours, minutes, seconds)
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes, seconds)
}

// HMSMS formats with hundredths rounded to the nearest, omitting leading
// zero units: "5.07", "1:05.07", "1:02:03.45". The most significant unit is
// not zero padded.
func HMSMS(value model.NullDuration) string {
	if !value.Valid {
		return missing
	}
	sign, hours, minutes, seconds, hundredths := split(value.Duration.Round(10 * time.Millisecond))
	switch {
	case hours > 0:
		return fmt.Sprintf("%s%d:%02d:%02d.%02d", sign, hours, minutes, seconds, hundredths)
	case minutes > 0:
		return fmt.Sprintf("%s%d:%02d.%02d", sign, minutes, seconds, hundredths)
	default:
		return fmt.Sprintf("%s%d.%02d", sign, seconds, hundredths)
	}
}

// Delta formats a signed difference against a comparison time, always with
// an explicit sign ("+1.20", "-0.35", "+1:02.00").
func Delta(value model.NullDuration) string {
	if !value.Valid {
		return missing
	}
	value.Duration = value.Duration.Round(10 * time.Millisecond)
	if value.Duration < 0 {
		return HMSMS(value)
	}
	return "+" + HMSMS(value)
}

// Elapsed picks HMSMS or HMS depending on the precision setting.
func Elapsed(value model.NullDuration, showHundredths bool) string {
	if showHundredths {
		return HMSMS(value)
	}
	return HMS(value)
}

func split(value time.Duration) (sign string, hours, minutes, seconds, hundredths int64) {
	if value < 0 {
		sign = "-"
		value = -value
	}
	total := int64(value / (10 * time.Millisecond))
	hundredths = total % 100
	total /= 100
	seconds = total % 60
	total /= 60
	minutes = total % 60
	hours = total / 60
	return sign, hours, minutes, seconds, hundredths
}
