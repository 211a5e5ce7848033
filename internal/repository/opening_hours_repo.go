package repository

import (
	"context"
	"errors"

	"studyrooms/internal/domain"

	"gorm.io/gorm"
)

// OpeningHoursRepository persists the venue's weekly schedule plus
// per-date exceptions (holidays, reduced hours).
type OpeningHoursRepository interface {
	WeeklyHours(ctx context.Context) ([]domain.OpeningHour, error)
	UpcomingExceptions(ctx context.Context, fromDate string) ([]domain.OpeningException, error)
	ExceptionForDate(ctx context.Context, date string) (*domain.OpeningException, error)
	SaveWeeklyHours(ctx context.Context, week []domain.OpeningHour) error
	SaveException(ctx context.Context, ex *domain.OpeningException) error
}

type openingHoursRepository struct {
	db *gorm.DB
}

func NewOpeningHoursRepository(db *gorm.DB) OpeningHoursRepository {
	return &openingHoursRepository{db: db}
}

type openingHourModel struct {
	ID       int64   `gorm:"column:id;primaryKey"`
	Weekday  int     `gorm:"column:weekday;uniqueIndex"`
	Opens    string  `gorm:"column:opens;size:5"`
	Closes   string  `gorm:"column:closes;size:5"`
	IsClosed bool    `gorm:"column:is_closed"`
	Note     *string `gorm:"column:note"`
}

func (openingHourModel) TableName() string { return "opening_hours" }

type openingExceptionModel struct {
	ID       int64   `gorm:"column:id;primaryKey"`
	Date     string  `gorm:"column:date;size:10;uniqueIndex"`
	Opens    *string `gorm:"column:opens;size:5"`
	Closes   *string `gorm:"column:closes;size:5"`
	IsClosed bool    `gorm:"column:is_closed"`
	Reason   *string `gorm:"column:reason"`
}

func (openingExceptionModel) TableName() string { return "opening_exceptions" }

func toDomainHour(m openingHourModel) domain.OpeningHour {
	var note string
	if m.Note != nil {
		note = *m.Note
	}
	return domain.OpeningHour{
		ID:       m.ID,
		Weekday:  m.Weekday,
		Opens:    m.Opens,
		Closes:   m.Closes,
		IsClosed: m.IsClosed,
		Note:     note,
	}
}

func toDomainException(m openingExceptionModel) domain.OpeningException {
	var reason string
	if m.Reason != nil {
		reason = *m.Reason
	}
	return domain.OpeningException{
		ID:       m.ID,
		Date:     m.Date,
		Opens:    m.Opens,
		Closes:   m.Closes,
		IsClosed: m.IsClosed,
		Reason:   reason,
	}
}

// WeeklyHours returns the default schedule when nothing is configured
// yet, so a fresh install is open rather than dead.
func (r *openingHoursRepository) WeeklyHours(ctx context.Context) ([]domain.OpeningHour, error) {
	var rows []openingHourModel
	tx := r.db.WithContext(ctx).Order("weekday ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if len(rows) == 0 {
		return domain.DefaultOpeningHours(), nil
	}

	out := make([]domain.OpeningHour, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainHour(m))
	}
	return out, nil
}

func (r *openingHoursRepository) UpcomingExceptions(ctx context.Context, fromDate string) ([]domain.OpeningException, error) {
	var rows []openingExceptionModel
	tx := r.db.WithContext(ctx).
		Where("date >= ?", fromDate).
		Order("date ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.OpeningException, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainException(m))
	}
	return out, nil
}

func (r *openingHoursRepository) ExceptionForDate(ctx context.Context, date string) (*domain.OpeningException, error) {
	var m openingExceptionModel
	tx := r.db.WithContext(ctx).Where("date = ?", date).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	ex := toDomainException(m)
	return &ex, nil
}

func (r *openingHoursRepository) SaveWeeklyHours(ctx context.Context, week []domain.OpeningHour) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&openingHourModel{}).Error; err != nil {
			return err
		}
		for _, h := range week {
			var note *string
			if h.Note != "" {
				v := h.Note
				note = &v
			}
			m := openingHourModel{
				Weekday:  h.Weekday,
				Opens:    h.Opens,
				Closes:   h.Closes,
				IsClosed: h.IsClosed,
				Note:     note,
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *openingHoursRepository) SaveException(ctx context.Context, ex *domain.OpeningException) error {
	var reason *string
	if ex.Reason != "" {
		v := ex.Reason
		reason = &v
	}
	m := openingExceptionModel{
		ID:       ex.ID,
		Date:     ex.Date,
		Opens:    ex.Opens,
		Closes:   ex.Closes,
		IsClosed: ex.IsClosed,
		Reason:   reason,
	}
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	ex.ID = m.ID
	return nil
}
