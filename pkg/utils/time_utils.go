package utils

import "time"

// Epoch values are stored as unix seconds everywhere in the schema.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// DaysUntil returns the number of whole-or-partial days between now and the
// given unix-seconds deadline, rounded up. Returns 0 once the deadline passed.
func DaysUntil(deadline int64, now time.Time) int {
	remaining := deadline - now.Unix()
	if remaining <= 0 {
		return 0
	}
	const day = int64(24 * 60 * 60)
	return int((remaining + day - 1) / day)
}
