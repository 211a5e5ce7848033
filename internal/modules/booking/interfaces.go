package booking

import (
	"context"
	"time"

	"studyrooms/internal/domain"
)

// BookingRepository is the persistence boundary for bookings. The
// overlap guarantee lives here: CreateIfFree must be atomic.
type BookingRepository interface {
	// CreateIfFree inserts the booking unless a confirmed booking for
	// the same room and date overlaps it, in which case it returns
	// repository.ErrOverlappingBooking without inserting.
	CreateIfFree(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkCancelled(ctx context.Context, id int64, at time.Time) error
	// IntervalsForRoomOnDate returns the confirmed intervals only.
	IntervalsForRoomOnDate(ctx context.Context, roomID int64, date string) ([]domain.Interval, error)
	ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	// CountActiveForUser counts confirmed bookings that have not ended
	// yet: date after today, or today with ends_at still ahead.
	CountActiveForUser(ctx context.Context, userID int64, today string, nowMinutes int) (int, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// OpeningWindow resolves the venue's open window for a date.
// The second return is false when the venue is closed that day.
type OpeningWindow interface {
	WindowForDate(ctx context.Context, date time.Time) (domain.Interval, bool, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error
}
