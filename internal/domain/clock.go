package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze "today" via
// SetClock. Production code uses the real clock; tests inject a fake for
// deterministic projections.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for projections and classification.
// Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Today returns the current date truncated to midnight UTC. All window
// arithmetic operates on whole days.
func Today() time.Time {
	now := clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
