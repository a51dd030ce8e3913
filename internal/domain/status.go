package domain

import (
	"fmt"
	"time"
)

// Status is one of the harvest lifecycle states. The six full-model states
// partition the date line for any window; FeedStatus collapses them to the
// four discovery-feed buckets.
type Status string

const (
	StatusPreSeason   Status = "pre_season"
	StatusApproaching Status = "approaching"
	StatusInSeason    Status = "in_season"
	StatusAtPeak      Status = "at_peak"
	StatusPastPeak    Status = "past_peak"
	StatusEnded       Status = "ended"
	StatusOffSeason   Status = "off_season"
)

// DefaultApproachingDays is the discovery feed's hard cutoff: a window
// opening within this many days is "approaching". A product decision, kept
// literal rather than derived from confidence.
const DefaultApproachingDays = 21

// HarvestStatus is the classification of a window against a given day.
type HarvestStatus struct {
	Status    Status
	Message   string
	DaysUntil int // days until the window opens; set only pre-window
}

const messageDateFormat = "Jan 2"

// Classify assigns exactly one full-model status to a window for the given
// day. Checks run pre-window first so collapsed windows (maturity == peak)
// resolve to the earlier state, then peak (boundary-inclusive), then the
// surviving in-window split.
func Classify(w HarvestWindow, today time.Time, approachingDays int) HarvestStatus {
	if today.Before(w.HarvestStart) {
		daysUntil := daysBetween(today, w.HarvestStart)
		if daysUntil <= approachingDays {
			return HarvestStatus{
				Status:    StatusApproaching,
				Message:   fmt.Sprintf("Season begins in %d days", daysUntil),
				DaysUntil: daysUntil,
			}
		}
		return HarvestStatus{
			Status:    StatusPreSeason,
			Message:   fmt.Sprintf("Season begins around %s", w.HarvestStart.Format(messageDateFormat)),
			DaysUntil: daysUntil,
		}
	}

	if today.After(w.HarvestEnd) {
		return HarvestStatus{
			Status:  StatusEnded,
			Message: fmt.Sprintf("Season ended %s", w.HarvestEnd.Format(messageDateFormat)),
		}
	}

	if !today.Before(w.PeakStart) && !today.After(w.PeakEnd) {
		return HarvestStatus{
			Status:  StatusAtPeak,
			Message: fmt.Sprintf("Peak quality now through %s", w.PeakEnd.Format(messageDateFormat)),
		}
	}

	if today.Before(w.PeakStart) {
		return HarvestStatus{
			Status:  StatusInSeason,
			Message: fmt.Sprintf("In season; peak begins %s", w.PeakStart.Format(messageDateFormat)),
		}
	}

	return HarvestStatus{
		Status:  StatusPastPeak,
		Message: fmt.Sprintf("Past peak, still available through %s", w.HarvestEnd.Format(messageDateFormat)),
	}
}

// FeedStatus maps a full-model status onto the discovery feed's four
// buckets: off_season | approaching | in_season | at_peak.
func FeedStatus(s Status) Status {
	switch s {
	case StatusPreSeason, StatusEnded:
		return StatusOffSeason
	case StatusPastPeak:
		return StatusInSeason
	default:
		return s
	}
}
