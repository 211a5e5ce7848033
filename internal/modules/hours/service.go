package hours

import (
	"context"
	"fmt"
	"time"

	"studyrooms/internal/domain"
	"studyrooms/internal/repository"
)

type Service struct {
	repo repository.OpeningHoursRepository
	loc  *time.Location
}

func NewService(repo repository.OpeningHoursRepository, loc *time.Location) *Service {
	return &Service{repo: repo, loc: loc}
}

type ScheduleResponse struct {
	Week       []domain.OpeningHour      `json:"week"`
	Exceptions []domain.OpeningException `json:"exceptions"`
}

// Schedule returns the weekly rows plus exceptions from the given date on.
func (s *Service) Schedule(ctx context.Context, from time.Time) (*ScheduleResponse, error) {
	week, err := s.repo.WeeklyHours(ctx)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.repo.UpcomingExceptions(ctx, domain.FormatDate(from))
	if err != nil {
		return nil, err
	}
	return &ScheduleResponse{Week: week, Exceptions: exceptions}, nil
}

// WindowForDate resolves the effective open window for a date. A dated
// exception wins over the weekly row; a missing weekly row falls back
// to the venue default. The second return is false on closed days.
func (s *Service) WindowForDate(ctx context.Context, date time.Time) (domain.Interval, bool, error) {
	ex, err := s.repo.ExceptionForDate(ctx, domain.FormatDate(date))
	if err != nil {
		return domain.Interval{}, false, err
	}
	if ex != nil {
		if ex.IsClosed || ex.Opens == nil || ex.Closes == nil {
			return domain.Interval{}, false, nil
		}
		return parseWindow(*ex.Opens, *ex.Closes)
	}

	week, err := s.repo.WeeklyHours(ctx)
	if err != nil {
		return domain.Interval{}, false, err
	}

	weekday := int(date.Weekday())
	for _, row := range week {
		if row.Weekday != weekday {
			continue
		}
		if row.IsClosed {
			return domain.Interval{}, false, nil
		}
		return parseWindow(row.Opens, row.Closes)
	}

	return parseWindow(domain.DefaultOpens, domain.DefaultCloses)
}

func parseWindow(opens, closes string) (domain.Interval, bool, error) {
	start, err := domain.ParseTimeOfDay(opens)
	if err != nil {
		return domain.Interval{}, false, fmt.Errorf("stored opening time: %w", err)
	}
	end, err := domain.ParseTimeOfDay(closes)
	if err != nil {
		return domain.Interval{}, false, fmt.Errorf("stored closing time: %w", err)
	}
	window := domain.Interval{Start: start, End: end}
	if !window.Valid() {
		return domain.Interval{}, false, nil
	}
	return window, true, nil
}
