package repository

import (
	"context"
	"errors"
	"time"

	"studyrooms/internal/domain"

	"gorm.io/gorm"
)

// ErrOverlappingBooking is returned by CreateIfFree when a confirmed
// booking already covers part of the requested range.
var ErrOverlappingBooking = errors.New("overlapping booking exists")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	RoomID      int64      `gorm:"column:room_id;index:idx_bookings_room_date"`
	UserID      int64      `gorm:"column:user_id;index"`
	Date        string     `gorm:"column:date;size:10;index:idx_bookings_room_date"`
	StartMin    int        `gorm:"column:start_min"`
	EndMin      int        `gorm:"column:end_min"`
	PeopleCount int        `gorm:"column:people_count"`
	Purpose     *string    `gorm:"column:purpose"`
	Status      string     `gorm:"column:status;size:16"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var purpose string
	if m.Purpose != nil {
		purpose = *m.Purpose
	}

	return &domain.Booking{
		ID:          m.ID,
		RoomID:      m.RoomID,
		UserID:      m.UserID,
		Date:        m.Date,
		StartsAt:    domain.TimeOfDay(m.StartMin),
		EndsAt:      domain.TimeOfDay(m.EndMin),
		PeopleCount: m.PeopleCount,
		Purpose:     purpose,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var purpose *string
	if b.Purpose != "" {
		v := b.Purpose
		purpose = &v
	}

	return bookingModel{
		ID:          b.ID,
		RoomID:      b.RoomID,
		UserID:      b.UserID,
		Date:        b.Date,
		StartMin:    b.StartsAt.Minutes(),
		EndMin:      b.EndsAt.Minutes(),
		PeopleCount: b.PeopleCount,
		Purpose:     purpose,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
}

// CreateIfFree runs the overlap check and the insert in one
// transaction, so two concurrent submissions for the same range can
// not both pass. On Postgres the exclusion constraint installed by
// Migrate backs this up at the schema level; the count here is not
// atomic under READ COMMITTED on its own.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		q := `
SELECT COUNT(1)
FROM bookings
WHERE room_id = ?
  AND date = ?
  AND status = 'confirmed'
  AND start_min < ?
  AND end_min > ?
`
		if err := tx.Raw(q, m.RoomID, m.Date, m.EndMin, m.StartMin).Scan(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlappingBooking
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) MarkCancelled(ctx context.Context, id int64, at time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": at,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) IntervalsForRoomOnDate(ctx context.Context, roomID int64, date string) ([]domain.Interval, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Select("start_min", "end_min").
		Where("room_id = ? AND date = ? AND status = ?", roomID, date, string(domain.BookingConfirmed)).
		Order("start_min ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Interval, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Interval{
			Start: domain.TimeOfDay(m.StartMin),
			End:   domain.TimeOfDay(m.EndMin),
		})
	}
	return out, nil
}

func (r *BookingRepository) ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ? AND status = ?", roomID, date, string(domain.BookingConfirmed)).
		Order("start_min ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, start_min ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) CountActiveForUser(ctx context.Context, userID int64, today string, nowMinutes int) (int, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE user_id = ?
  AND status = 'confirmed'
  AND (date > ? OR (date = ? AND end_min > ?))
`
	tx := r.db.WithContext(ctx).Raw(q, userID, today, today, nowMinutes).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(cnt), nil
}
