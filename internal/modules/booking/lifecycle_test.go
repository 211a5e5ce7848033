package booking

import (
	"testing"
	"time"

	"studyrooms/internal/domain"

	"github.com/stretchr/testify/assert"
)

func testBooking(status domain.BookingStatus) domain.Booking {
	start, _ := domain.ParseTimeOfDay("09:00")
	end, _ := domain.ParseTimeOfDay("10:00")
	return domain.Booking{
		Date:     "2025-11-03",
		StartsAt: start,
		EndsAt:   end,
		Status:   status,
	}
}

func at(s string) time.Time {
	v, _ := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	return v
}

func TestClassify_Upcoming(t *testing.T) {
	b := testBooking(domain.BookingConfirmed)
	assert.Equal(t, domain.BucketUpcoming, Classify(b, at("2025-11-02 18:00"), time.UTC))
}

func TestClassify_RunningBookingIsUpcoming(t *testing.T) {
	// started but not ended: still upcoming by the end-time rule
	b := testBooking(domain.BookingConfirmed)
	assert.Equal(t, domain.BucketUpcoming, Classify(b, at("2025-11-03 09:30"), time.UTC))
}

func TestClassify_Past(t *testing.T) {
	b := testBooking(domain.BookingConfirmed)
	assert.Equal(t, domain.BucketPast, Classify(b, at("2025-11-03 10:01"), time.UTC))
}

func TestClassify_EndInstantIsStillUpcoming(t *testing.T) {
	b := testBooking(domain.BookingConfirmed)
	assert.Equal(t, domain.BucketUpcoming, Classify(b, at("2025-11-03 10:00"), time.UTC))
}

func TestClassify_CancelledWinsOverPast(t *testing.T) {
	b := testBooking(domain.BookingCancelled)
	assert.Equal(t, domain.BucketCancelled, Classify(b, at("2025-12-01 00:00"), time.UTC))
	assert.Equal(t, domain.BucketCancelled, Classify(b, at("2025-11-01 00:00"), time.UTC))
}
