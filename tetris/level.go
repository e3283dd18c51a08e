package tetris

import "time"

// fallIntervals[n] is the gravity period at level n+1.
var fallIntervals = [10]time.Duration{
	1000 * time.Millisecond,
	850 * time.Millisecond,
	700 * time.Millisecond,
	600 * time.Millisecond,
	500 * time.Millisecond,
	400 * time.Millisecond,
	300 * time.Millisecond,
	250 * time.Millisecond,
	221 * time.Millisecond,
	190 * time.Millisecond,
}

// FallInterval returns how long a piece waits between gravity steps at the
// given level. Levels past the table reuse its last entry.
func FallInterval(level uint32) time.Duration {
	if level < 1 {
		return fallIntervals[0]
	}
	if int(level) > len(fallIntervals) {
		return fallIntervals[len(fallIntervals)-1]
	}
	return fallIntervals[level-1]
}
