package catalog

import (
	"context"
	"errors"

	"studyrooms/internal/domain"

	"gorm.io/gorm"
)

var ErrRoomNotFound = errors.New("room not found")

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListActive(ctx context.Context) ([]domain.Room, error)
}

type Service struct {
	rooms RoomRepository
}

func NewService(rooms RoomRepository) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.ListActive(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	return room, nil
}
