package booking

import (
	"time"

	"studyrooms/internal/domain"
)

// Policy holds the fair-use limits enforced on every submission.
type Policy struct {
	MaxDurationMinutes     int
	MaxActiveBookings      int
	MaxAdvanceDays         int
	SlotGranularityMinutes int
}

func DefaultPolicy() Policy {
	return Policy{
		MaxDurationMinutes:     180,
		MaxActiveBookings:      3,
		MaxAdvanceDays:         14,
		SlotGranularityMinutes: 30,
	}
}

// ValidateProposal runs the ordered conflict checks for a proposed
// interval and fails on the first violation. existing must be the
// freshly read confirmed intervals for the same room and date; the
// caller re-runs this at commit time, the repository insert remains
// the final arbiter against concurrent submissions.
func (p Policy) ValidateProposal(
	proposed domain.Interval,
	window domain.Interval,
	existing []domain.Interval,
	activeCount int,
	date time.Time,
	today time.Time,
) error {
	if !proposed.Valid() {
		return ErrInvalidRange
	}
	if proposed.DurationMinutes() > p.MaxDurationMinutes {
		return ErrDurationExceeded
	}
	if !window.Valid() || !proposed.Within(window) {
		return ErrOutsideOpeningHours
	}
	for _, ex := range existing {
		if proposed.Overlaps(ex) {
			return ErrOverlap
		}
	}
	if activeCount >= p.MaxActiveBookings {
		return &QuotaError{Active: activeCount, Limit: p.MaxActiveBookings}
	}
	if date.After(today.AddDate(0, 0, p.MaxAdvanceDays)) {
		return ErrTooFarInAdvance
	}
	return nil
}
