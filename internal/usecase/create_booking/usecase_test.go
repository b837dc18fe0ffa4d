package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockHoursRepo struct{ mock.Mock }

func (m *mockHoursRepo) Get(ctx context.Context, businessID int64, professionalID *int64) (domain.WeeklyHours, error) {
	args := m.Called(ctx, businessID, professionalID)
	return args.Get(0).(domain.WeeklyHours), args.Error(1)
}

func (m *mockHoursRepo) ListProfessionals(ctx context.Context, businessID int64) (map[int64]domain.WeeklyHours, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(map[int64]domain.WeeklyHours), args.Error(1)
}

type mockAvailabilityRepo struct{ mock.Mock }

func (m *mockAvailabilityRepo) List(ctx context.Context, filter availabilityRepo.Filter) ([]*domain.ProfessionalAvailability, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.ProfessionalAvailability), args.Error(1)
}

type mockConfigResolver struct{ mock.Mock }

func (m *mockConfigResolver) Resolve(ctx context.Context, businessID int64) (*domain.BusinessSlotsConfig, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(*domain.BusinessSlotsConfig), args.Error(1)
}

// inlineTx выполняет fn без реальной транзакции
type inlineTx struct{ calls int }

func (tx *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// 2025-06-02 is a Monday
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings     *mockBookingRepo
	hours        *mockHoursRepo
	availability *mockAvailabilityRepo
	tx           *inlineTx
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings:     &mockBookingRepo{},
		hours:        &mockHoursRepo{},
		availability: &mockAvailabilityRepo{},
		tx:           &inlineTx{},
	}
	config := &mockConfigResolver{}
	config.On("Resolve", mock.Anything, int64(42)).Return(&domain.BusinessSlotsConfig{
		BusinessID:              42,
		SlotDurationMinutes:     60,
		MinBookingNoticeMinutes: 60,
	}, nil)

	f.uc = NewUseCase(f.bookings, f.hours, f.availability, config, f.tx, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) withSchedule(ledger []*domain.Booking) {
	f.hours.On("Get", mock.Anything, int64(42), (*int64)(nil)).Return(domain.NewWeeklyHours(map[domain.Weekday][]domain.TimeRange{
		domain.Monday: {domain.MustTimeRange("09:00", "12:00")},
	}), nil)
	f.hours.On("ListProfessionals", mock.Anything, int64(42)).Return(map[int64]domain.WeeklyHours{
		7: domain.NewWeeklyHours(map[domain.Weekday][]domain.TimeRange{
			domain.Monday: {domain.MustTimeRange("09:00", "18:00")},
		}),
	}, nil)
	f.availability.On("List", mock.Anything, mock.Anything).Return([]*domain.ProfessionalAvailability{}, nil)
	f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.Anything).Return(ledger, nil)
}

func reservation(start time.Time) *Request {
	return &Request{
		UserID:         500,
		BusinessID:     42,
		ProfessionalID: ptr.Ptr[int64](7),
		ServiceID:      ptr.Ptr[int64](3),
		ClientName:     "Anna",
		ServiceName:    "Haircut",
		Start:          start,
	}
}

func TestExecute_Reservation(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	f.withSchedule([]*domain.Booking{})
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Kind == domain.KindReservation &&
			*b.ClientID == 500 &&
			b.End.Equal(monday.Add(11*time.Hour))
	})).Return(&domain.Booking{
		ID:             99,
		BusinessID:     42,
		ProfessionalID: ptr.Ptr[int64](7),
		Start:          monday.Add(10 * time.Hour),
		End:            monday.Add(11 * time.Hour),
		Kind:           domain.KindReservation,
		Status:         domain.StatusConfirmed,
	}, nil)

	resp, err := f.uc.Execute(context.Background(), reservation(monday.Add(10*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, int64(99), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, f.tx.calls)
	f.bookings.AssertExpectations(t)
}

func TestExecute_ReservationRejected(t *testing.T) {
	busy := []*domain.Booking{{
		ID:             5,
		BusinessID:     42,
		ProfessionalID: ptr.Ptr[int64](7),
		Start:          monday.Add(10 * time.Hour),
		End:            monday.Add(11 * time.Hour),
		Kind:           domain.KindReservation,
		Status:         domain.StatusConfirmed,
	}}

	tests := []struct {
		name  string
		now   time.Time
		start time.Time
		end   *time.Time
		want  error
	}{
		{"occupied", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), monday.Add(10*time.Hour + 30*time.Minute), nil, ErrSlotNotAvailable},
		{"past business close", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), monday.Add(11*time.Hour + 30*time.Minute), nil, ErrInvalidTimeSlot},
		{"inside notice", monday.Add(8*time.Hour + 30*time.Minute), monday.Add(9 * time.Hour), nil, ErrTooLateToBook},
		{"past date", time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC), monday.Add(9 * time.Hour), nil, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.now)
			f.withSchedule(busy)

			req := reservation(tt.start)
			req.End = tt.end
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_BlockOutsideHours(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Kind == domain.KindBlock && b.ClientID == nil && b.ProfessionalID == nil
	})).Return(&domain.Booking{ID: 100, BusinessID: 42, Kind: domain.KindBlock, Status: domain.StatusConfirmed}, nil)

	end := monday.Add(21 * time.Hour)
	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:     1,
		BusinessID: 42,
		Kind:       "block",
		Start:      monday.Add(19 * time.Hour),
		End:        &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "block", resp.Kind)
	f.hours.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_BlockOverlapsBooking(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	f.bookings.On("GetByBusinessWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{{
		ID:             5,
		BusinessID:     42,
		ProfessionalID: ptr.Ptr[int64](8),
		Start:          monday.Add(10 * time.Hour),
		End:            monday.Add(11 * time.Hour),
		Kind:           domain.KindReservation,
		Status:         domain.StatusPending,
	}}, nil)

	end := monday.Add(12 * time.Hour)
	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:     1,
		BusinessID: 42,
		Kind:       "block",
		Start:      monday.Add(9 * time.Hour),
		End:        &end,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	earlier := monday.Add(9 * time.Hour)

	tests := []struct {
		name string
		req  *Request
	}{
		{"no user", &Request{BusinessID: 42, ProfessionalID: ptr.Ptr[int64](7), Start: monday}},
		{"reservation without professional", &Request{UserID: 1, BusinessID: 42, Start: monday}},
		{"unknown kind", &Request{UserID: 1, BusinessID: 42, Kind: "holiday", Start: monday}},
		{"no start", &Request{UserID: 1, BusinessID: 42, ProfessionalID: ptr.Ptr[int64](7)}},
		{"end before start", &Request{UserID: 1, BusinessID: 42, ProfessionalID: ptr.Ptr[int64](7), Start: monday.Add(10 * time.Hour), End: &earlier}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, f.tx.calls)
}
