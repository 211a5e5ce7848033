package booking

import (
	"time"

	"studyrooms/internal/domain"
)

// Classify derives the lifecycle bucket of a booking at observation
// time now. A booking counts as past only once its end has passed, so
// a booking that is currently running still shows as upcoming.
func Classify(b domain.Booking, now time.Time, loc *time.Location) domain.LifecycleBucket {
	if b.Status == domain.BookingCancelled {
		return domain.BucketCancelled
	}
	day, err := domain.ParseDate(b.Date, loc)
	if err != nil {
		// stored dates are written by us; keep an unreadable one visible
		return domain.BucketUpcoming
	}
	if b.EndsAt.On(day, loc).Before(now) {
		return domain.BucketPast
	}
	return domain.BucketUpcoming
}
