package repository

import (
	"context"
	"time"

	"studyrooms/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	Capacity    int       `gorm:"column:capacity"`
	Floor       int       `gorm:"column:floor"`
	PhotoURL    *string   `gorm:"column:photo_url"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}

	return &domain.Room{
		ID:          m.ID,
		Name:        m.Name,
		Description: desc,
		Capacity:    m.Capacity,
		Floor:       m.Floor,
		PhotoURL:    m.PhotoURL,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Upsert inserts a room or updates the existing row with the same name.
// Room names are unique within the building.
func (r *RoomRepository) Upsert(ctx context.Context, room *domain.Room) error {
	var desc *string
	if room.Description != "" {
		d := room.Description
		desc = &d
	}

	m := roomModel{
		Name:        room.Name,
		Description: desc,
		Capacity:    room.Capacity,
		Floor:       room.Floor,
		PhotoURL:    room.PhotoURL,
		IsActive:    room.IsActive,
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "capacity", "floor", "photo_url", "is_active", "updated_at"}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}

	room.ID = m.ID
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListActive(ctx context.Context) ([]domain.Room, error) {
	var rows []roomModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("floor ASC, name ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}
