package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studyrooms/internal/domain"
	"studyrooms/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	hours    OpeningWindow
	notifs   NotificationSender
	policy   Policy
	loc      *time.Location
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	hours OpeningWindow,
	notifs NotificationSender,
	policy Policy,
	loc *time.Location,
) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		hours:    hours,
		notifs:   notifs,
		policy:   policy,
		loc:      loc,
		now:      time.Now,
	}
}

// ListFreeSlots computes the free, bookable windows of a room for a date.
func (s *Service) ListFreeSlots(ctx context.Context, roomID int64, dateStr string) (*AvailabilityResponse, error) {
	day, err := domain.ParseDate(dateStr, s.loc)
	if err != nil {
		return nil, err
	}

	if _, err := s.getActiveRoom(ctx, roomID); err != nil {
		return nil, err
	}

	resp := &AvailabilityResponse{
		RoomID: roomID,
		Date:   domain.FormatDate(day),
		Free:   []domain.Interval{},
	}

	window, open, err := s.hours.WindowForDate(ctx, day)
	if err != nil {
		return nil, unavailable(err)
	}
	if !open {
		return resp, nil
	}

	occupied, err := s.bookings.IntervalsForRoomOnDate(ctx, roomID, resp.Date)
	if err != nil {
		return nil, unavailable(err)
	}

	resp.Free = FreeSlots(window, occupied, s.policy.SlotGranularityMinutes)
	return resp, nil
}

// SubmitBooking validates the proposal against freshly read state and
// persists it. The availability listing the client saw is never
// trusted; the repository insert is additionally atomic, so of two
// concurrent submissions for the same slot exactly one survives.
func (s *Service) SubmitBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	day, err := domain.ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	start, err := domain.ParseTimeOfDay(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseTimeOfDay(req.End)
	if err != nil {
		return nil, err
	}
	proposed := domain.Interval{Start: start, End: end}

	if _, err := s.getActiveRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	window, open, err := s.hours.WindowForDate(ctx, day)
	if err != nil {
		return nil, unavailable(err)
	}
	if !open {
		return nil, ErrOutsideOpeningHours
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	dateStr := domain.FormatDate(day)

	existing, err := s.bookings.IntervalsForRoomOnDate(ctx, req.RoomID, dateStr)
	if err != nil {
		return nil, unavailable(err)
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	active, err := s.bookings.CountActiveForUser(ctx, userID, domain.FormatDate(today), nowMinutes)
	if err != nil {
		return nil, unavailable(err)
	}

	if err := s.policy.ValidateProposal(proposed, window, existing, active, day, today); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		RoomID:      req.RoomID,
		UserID:      userID,
		Date:        dateStr,
		StartsAt:    start,
		EndsAt:      end,
		PeopleCount: req.PeopleCount,
		Purpose:     req.Purpose,
		Status:      domain.BookingConfirmed,
	}

	if err := s.bookings.CreateIfFree(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlappingBooking) {
			return nil, ErrOverlap
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == "23505" || pgErr.Code == "23P01") &&
			pgErr.ConstraintName == repository.OverlapConstraintName {
			return nil, ErrOverlap
		}
		return nil, unavailable(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b)
	}

	return b, nil
}

// CancelBooking flips a booking to cancelled. Cancelling an already
// cancelled booking is a no-op success.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return unavailable(err)
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	if b.Status == domain.BookingCancelled {
		return nil
	}

	if err := s.bookings.MarkCancelled(ctx, bookingID, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return unavailable(err)
	}

	if s.notifs != nil {
		b.Status = domain.BookingCancelled
		_ = s.notifs.NotifyBookingCancelled(ctx, b)
	}
	return nil
}

// ListUserBookings returns the user's bookings partitioned by lifecycle
// bucket, derived at read time.
func (s *Service) ListUserBookings(ctx context.Context, userID int64) (*MyBookingsResponse, error) {
	rows, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}

	now := s.now().In(s.loc)
	resp := &MyBookingsResponse{
		Upcoming:  []domain.BookingView{},
		Past:      []domain.BookingView{},
		Cancelled: []domain.BookingView{},
	}
	for _, b := range rows {
		view := domain.BookingView{Booking: b, Bucket: Classify(b, now, s.loc)}
		switch view.Bucket {
		case domain.BucketCancelled:
			resp.Cancelled = append(resp.Cancelled, view)
		case domain.BucketPast:
			resp.Past = append(resp.Past, view)
		default:
			resp.Upcoming = append(resp.Upcoming, view)
		}
	}
	return resp, nil
}

// ListRoomBookings returns the confirmed bookings of a room on a date.
func (s *Service) ListRoomBookings(ctx context.Context, roomID int64, dateStr string) ([]domain.Booking, error) {
	day, err := domain.ParseDate(dateStr, s.loc)
	if err != nil {
		return nil, err
	}
	rows, err := s.bookings.ListByRoomAndDate(ctx, roomID, domain.FormatDate(day))
	if err != nil {
		return nil, unavailable(err)
	}
	return rows, nil
}

func (s *Service) getActiveRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, unavailable(err)
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
