package booking

import (
	"context"
	"testing"
	"time"

	"studyrooms/internal/domain"
	"studyrooms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) MarkCancelled(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockBookingRepository) IntervalsForRoomOnDate(ctx context.Context, roomID int64, date string) ([]domain.Interval, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interval), args.Error(1)
}

func (m *MockBookingRepository) ListByRoomAndDate(ctx context.Context, roomID int64, date string) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountActiveForUser(ctx context.Context, userID int64, today string, nowMinutes int) (int, error) {
	args := m.Called(ctx, userID, today, nowMinutes)
	return args.Int(0), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockOpeningWindow struct {
	mock.Mock
}

func (m *MockOpeningWindow) WindowForDate(ctx context.Context, date time.Time) (domain.Interval, bool, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.Interval), args.Bool(1), args.Error(2)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func newTestService(bookings *MockBookingRepository, rooms *MockRoomRepository, hours *MockOpeningWindow, notifs NotificationSender) *Service {
	svc := NewService(bookings, rooms, hours, notifs, DefaultPolicy(), time.UTC)
	svc.now = func() time.Time {
		return time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func activeRoom() *domain.Room {
	return &domain.Room{ID: 10, Name: "Gruppenraum 101", Capacity: 6, IsActive: true}
}

func TestService_SubmitBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)
	mockNotifs := new(MockNotificationSender)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(ivp("08:00", "21:00"), true, nil)
	mockBookings.On("IntervalsForRoomOnDate", mock.Anything, int64(10), "2025-11-04").Return([]domain.Interval{}, nil)
	mockBookings.On("CountActiveForUser", mock.Anything, int64(7), "2025-11-03", 12*60).Return(0, nil)
	mockBookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(mockBookings, mockRooms, mockHours, mockNotifs)

	b, err := svc.SubmitBooking(context.Background(), 7, CreateBookingRequest{
		RoomID:      10,
		Date:        "2025-11-04",
		Start:       "09:00",
		End:         "10:00",
		PeopleCount: 3,
		Purpose:     "Statistik Lerngruppe",
	})

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, "2025-11-04", b.Date)
	mockBookings.AssertExpectations(t)
}

func TestService_SubmitBooking_DurationExceeded(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(ivp("08:00", "21:00"), true, nil)
	mockBookings.On("IntervalsForRoomOnDate", mock.Anything, int64(10), "2025-11-04").Return([]domain.Interval{}, nil)
	mockBookings.On("CountActiveForUser", mock.Anything, int64(7), "2025-11-03", 12*60).Return(0, nil)

	svc := newTestService(mockBookings, mockRooms, mockHours, nil)

	_, err := svc.SubmitBooking(context.Background(), 7, CreateBookingRequest{
		RoomID:      10,
		Date:        "2025-11-04",
		Start:       "13:00",
		End:         "16:30", // 210 minutes
		PeopleCount: 2,
	})

	assert.ErrorIs(t, err, ErrDurationExceeded)
	mockBookings.AssertNotCalled(t, "CreateIfFree", mock.Anything, mock.Anything)
}

func TestService_SubmitBooking_QuotaExceeded(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(ivp("08:00", "21:00"), true, nil)
	mockBookings.On("IntervalsForRoomOnDate", mock.Anything, int64(10), "2025-11-04").Return([]domain.Interval{}, nil)
	mockBookings.On("CountActiveForUser", mock.Anything, int64(7), "2025-11-03", 12*60).Return(3, nil)

	svc := newTestService(mockBookings, mockRooms, mockHours, nil)

	_, err := svc.SubmitBooking(context.Background(), 7, CreateBookingRequest{
		RoomID:      10,
		Date:        "2025-11-04",
		Start:       "09:00",
		End:         "10:00",
		PeopleCount: 2,
	})

	var quotaErr *QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 3, quotaErr.Active)
	mockBookings.AssertNotCalled(t, "CreateIfFree", mock.Anything, mock.Anything)
}

func TestService_SubmitBooking_BadTimeFormat(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), new(MockRoomRepository), new(MockOpeningWindow), nil)

	_, err := svc.SubmitBooking(context.Background(), 7, CreateBookingRequest{
		RoomID:      10,
		Date:        "2025-11-04",
		Start:       "9 Uhr",
		End:         "10:00",
		PeopleCount: 1,
	})

	var formatErr *domain.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

// Two submissions race for the same slot: the validator passes for
// both because each saw a fresh but pre-insert snapshot, and the
// atomic repository insert lets exactly one through.
func TestService_SubmitBooking_ConcurrentLoser(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(ivp("08:00", "21:00"), true, nil)
	mockBookings.On("IntervalsForRoomOnDate", mock.Anything, int64(10), "2025-11-04").Return([]domain.Interval{}, nil)
	mockBookings.On("CountActiveForUser", mock.Anything, mock.Anything, "2025-11-03", 12*60).Return(0, nil)
	mockBookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(nil).Once()
	mockBookings.On("CreateIfFree", mock.Anything, mock.Anything).Return(repository.ErrOverlappingBooking).Once()

	svc := newTestService(mockBookings, mockRooms, mockHours, nil)

	req := CreateBookingRequest{
		RoomID:      10,
		Date:        "2025-11-04",
		Start:       "14:00",
		End:         "15:00",
		PeopleCount: 2,
	}

	_, err1 := svc.SubmitBooking(context.Background(), 7, req)
	_, err2 := svc.SubmitBooking(context.Background(), 8, req)

	assert.NoError(t, err1)
	assert.ErrorIs(t, err2, ErrOverlap)
}

func TestService_CancelBooking_Idempotent(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	cancelled := testBooking(domain.BookingCancelled)
	cancelled.ID = 42
	cancelled.UserID = 7
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(&cancelled, nil)

	svc := newTestService(mockBookings, new(MockRoomRepository), new(MockOpeningWindow), nil)

	assert.NoError(t, svc.CancelBooking(context.Background(), 42, 7))
	mockBookings.AssertNotCalled(t, "MarkCancelled", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CancelBooking_NotFound(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(mockBookings, new(MockRoomRepository), new(MockOpeningWindow), nil)

	assert.ErrorIs(t, svc.CancelBooking(context.Background(), 404, 7), ErrNotFound)
}

func TestService_CancelBooking_Forbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	other := testBooking(domain.BookingConfirmed)
	other.ID = 42
	other.UserID = 99
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(&other, nil)

	svc := newTestService(mockBookings, new(MockRoomRepository), new(MockOpeningWindow), nil)

	assert.ErrorIs(t, svc.CancelBooking(context.Background(), 42, 7), ErrForbidden)
}

func TestService_CancelBooking_Confirmed(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockNotifs := new(MockNotificationSender)

	b := testBooking(domain.BookingConfirmed)
	b.ID = 42
	b.UserID = 7
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(&b, nil)
	mockBookings.On("MarkCancelled", mock.Anything, int64(42), mock.Anything).Return(nil)
	mockNotifs.On("NotifyBookingCancelled", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(mockBookings, new(MockRoomRepository), new(MockOpeningWindow), mockNotifs)

	require.NoError(t, svc.CancelBooking(context.Background(), 42, 7))
	mockBookings.AssertExpectations(t)
}

func TestService_ListFreeSlots(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(ivp("08:00", "21:00"), true, nil)
	mockBookings.On("IntervalsForRoomOnDate", mock.Anything, int64(10), "2025-11-04").
		Return([]domain.Interval{ivp("10:00", "11:00")}, nil)

	svc := newTestService(mockBookings, mockRooms, mockHours, nil)

	resp, err := svc.ListFreeSlots(context.Background(), 10, "2025-11-04")
	require.NoError(t, err)
	require.Len(t, resp.Free, 2)
	assert.Equal(t, ivp("08:00", "10:00"), resp.Free[0])
	assert.Equal(t, ivp("11:00", "21:00"), resp.Free[1])
}

func TestService_ListFreeSlots_ClosedDay(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(domain.Interval{}, false, nil)

	svc := newTestService(new(MockBookingRepository), mockRooms, mockHours, nil)

	resp, err := svc.ListFreeSlots(context.Background(), 10, "2025-11-09")
	require.NoError(t, err)
	assert.Empty(t, resp.Free)
}

func TestService_ListFreeSlots_InactiveRoom(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	room := activeRoom()
	room.IsActive = false
	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(room, nil)

	svc := newTestService(new(MockBookingRepository), mockRooms, new(MockOpeningWindow), nil)

	_, err := svc.ListFreeSlots(context.Background(), 10, "2025-11-04")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestService_ListUserBookings_Partition(t *testing.T) {
	mockBookings := new(MockBookingRepository)

	past := testBooking(domain.BookingConfirmed)
	past.ID = 1
	past.Date = "2025-11-01"

	upcoming := testBooking(domain.BookingConfirmed)
	upcoming.ID = 2
	upcoming.Date = "2025-11-05"

	cancelled := testBooking(domain.BookingCancelled)
	cancelled.ID = 3
	cancelled.Date = "2025-11-05"

	mockBookings.On("ListByUser", mock.Anything, int64(7)).
		Return([]domain.Booking{past, upcoming, cancelled}, nil)

	svc := newTestService(mockBookings, new(MockRoomRepository), new(MockOpeningWindow), nil)

	resp, err := svc.ListUserBookings(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, resp.Past, 1)
	require.Len(t, resp.Upcoming, 1)
	require.Len(t, resp.Cancelled, 1)
	assert.Equal(t, int64(1), resp.Past[0].ID)
	assert.Equal(t, int64(2), resp.Upcoming[0].ID)
	assert.Equal(t, int64(3), resp.Cancelled[0].ID)
	assert.Equal(t, domain.BucketUpcoming, resp.Upcoming[0].Bucket)
}

func TestService_ListFreeSlots_RepositoryDown(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockRooms := new(MockRoomRepository)
	mockHours := new(MockOpeningWindow)

	mockRooms.On("GetByID", mock.Anything, int64(10)).Return(activeRoom(), nil)
	mockHours.On("WindowForDate", mock.Anything, mock.Anything).Return(ivp("08:00", "21:00"), true, nil)
	mockBookings.On("IntervalsForRoomOnDate", mock.Anything, int64(10), "2025-11-04").
		Return(nil, assert.AnError)

	svc := newTestService(mockBookings, mockRooms, mockHours, nil)

	_, err := svc.ListFreeSlots(context.Background(), 10, "2025-11-04")
	assert.ErrorIs(t, err, ErrUnavailable)
}
