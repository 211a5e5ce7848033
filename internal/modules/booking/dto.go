package booking

import "studyrooms/internal/domain"

type CreateBookingRequest struct {
	RoomID      int64  `json:"roomId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	PeopleCount int    `json:"peopleCount" binding:"required,gte=1"`
	Purpose     string `json:"purpose"`
}

type AvailabilityResponse struct {
	RoomID int64             `json:"room_id"`
	Date   string            `json:"date"`
	Free   []domain.Interval `json:"free"`
}

// MyBookingsResponse partitions the user's bookings by lifecycle bucket.
type MyBookingsResponse struct {
	Upcoming  []domain.BookingView `json:"upcoming"`
	Past      []domain.BookingView `json:"past"`
	Cancelled []domain.BookingView `json:"cancelled"`
}
