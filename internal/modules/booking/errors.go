package booking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange        = errors.New("start time must be before end time")
	ErrDurationExceeded    = errors.New("maximum booking duration exceeded")
	ErrOutsideOpeningHours = errors.New("requested time is outside opening hours")
	ErrOverlap             = errors.New("time range overlaps an existing booking")
	ErrTooFarInAdvance     = errors.New("date is too far in advance")
	ErrRoomNotFound        = errors.New("room not found")
	ErrNotFound            = errors.New("booking not found")
	ErrForbidden           = errors.New("forbidden")

	// ErrUnavailable wraps repository I/O failures so they are never
	// mistaken for policy violations.
	ErrUnavailable = errors.New("storage unavailable")
)

// QuotaError carries the user's current active booking count so the
// caller can surface it.
type QuotaError struct {
	Active int
	Limit  int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("active booking limit reached (%d of %d)", e.Active, e.Limit)
}
