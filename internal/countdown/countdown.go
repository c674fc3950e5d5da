// Package countdown renders the time left until the unlock deadline.
package countdown

import (
	"fmt"
	"time"
)

// Arrived is shown once the deadline has passed.
const Arrived = "It's Time! ❤️"

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatMillis renders a millisecond duration as "{d}d {h}h {m}m {s}s".
// Sub-second remainders are truncated and days are not capped.
// Negative input yields Arrived.
func FormatMillis(ms int64) string {
	if ms < 0 {
		return Arrived
	}
	days := ms / msPerDay
	hours := (ms % msPerDay) / msPerHour
	minutes := (ms % msPerHour) / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// Format is FormatMillis for a time.Duration.
func Format(remaining time.Duration) string {
	return FormatMillis(remaining.Milliseconds())
}

// Remaining returns how long is left from now until target. The result
// is negative once target has passed.
func Remaining(now, target time.Time) time.Duration {
	return target.Sub(now)
}
