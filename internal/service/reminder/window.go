package reminder

import (
	"math"
	"time"
)

// DefaultWindowMinutes matches the dispatch cadence with one minute of slack,
// so a threshold is caught by exactly one tick even when the scheduler drifts.
const DefaultWindowMinutes = 6

// MinutesUntil returns the rounded whole-minute distance from now to start.
// Past starts yield negative values.
func MinutesUntil(now, start time.Time) int {
	return int(math.Round(start.Sub(now).Minutes()))
}

// IsDue reports whether diffMin falls inside the firing window for threshold:
// at or below the threshold but still above threshold minus the window width.
// The lower bound is exclusive so adjacent windows never overlap.
func IsDue(diffMin, threshold, window int) bool {
	return diffMin <= threshold && diffMin > threshold-window
}
