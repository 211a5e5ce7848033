package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// LifecycleBucket is the display-only classification of a booking,
// derived from the observation time on every read. Never persisted.
type LifecycleBucket string

const (
	BucketUpcoming  LifecycleBucket = "upcoming"
	BucketPast      LifecycleBucket = "past"
	BucketCancelled LifecycleBucket = "cancelled"
)

type Booking struct {
	ID          int64         `json:"id"`
	RoomID      int64         `json:"room_id" validate:"required"`
	UserID      int64         `json:"user_id" validate:"required"`
	Date        string        `json:"date" validate:"required"`
	StartsAt    TimeOfDay     `json:"starts_at"`
	EndsAt      TimeOfDay     `json:"ends_at"`
	PeopleCount int           `json:"people_count" validate:"gte=1"`
	Purpose     string        `json:"purpose,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Interval returns the booked [starts_at, ends_at) range.
func (b Booking) Interval() Interval {
	return Interval{Start: b.StartsAt, End: b.EndsAt}
}

// BookingView is a Booking plus its lifecycle bucket at observation time.
type BookingView struct {
	Booking
	Bucket LifecycleBucket `json:"bucket"`
}
