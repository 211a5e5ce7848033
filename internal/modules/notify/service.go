package notify

import (
	"context"

	"studyrooms/internal/domain"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
)

type Event struct {
	Type    string          `json:"type"`
	Booking *domain.Booking `json:"booking"`
}

// Service pushes booking events to the owner's live websocket, if any.
type Service struct {
	hub *Hub
}

func NewService(hub *Hub) *Service {
	return &Service{hub: hub}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	s.hub.SendToUser(b.UserID, Event{Type: EventBookingCreated, Booking: b})
	return nil
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	s.hub.SendToUser(b.UserID, Event{Type: EventBookingCancelled, Booking: b})
	return nil
}
