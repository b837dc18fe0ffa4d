package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	return m.Called(ctx, id, status, reason).Error(0)
}

type mockManagers struct {
	mock.Mock
}

func (m *mockManagers) IsManager(ctx context.Context, businessID, userID int64) (bool, error) {
	args := m.Called(ctx, businessID, userID)
	return args.Bool(0), args.Error(1)
}

const (
	clientID   = 100
	managerID  = 5
	strangerID = 77
)

func newService(repo *mockBookingRepo) *Service {
	managers := &mockManagers{}
	managers.On("IsManager", mock.Anything, int64(42), int64(managerID)).Return(true, nil)
	managers.On("IsManager", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	return NewService(repo, managers, logger.NewNop())
}

func confirmedBooking() *domain.Booking {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         1,
		BusinessID: 42,
		ClientID:   ptr.Ptr[int64](clientID),
		Start:      start,
		End:        start.Add(30 * time.Minute),
		Kind:       domain.KindReservation,
		Status:     domain.StatusConfirmed,
	}
}

func TestCancel_ByClient(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newService(repo)
	reason := "не успеваю"

	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)
	repo.On("Cancel", mock.Anything, int64(1), domain.StatusCancelledByClient, &reason).Return(nil)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID, CancellationReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByClient), resp.Status)
	repo.AssertExpectations(t)
}

func TestCancel_ByBusiness(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newService(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)
	repo.On("Cancel", mock.Anything, int64(1), domain.StatusCancelledByBusiness, (*string)(nil)).Return(nil)

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: managerID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByBusiness), resp.Status)
	repo.AssertExpectations(t)
}

func TestCancel_BlockByManager(t *testing.T) {
	repo := &mockBookingRepo{}
	block := confirmedBooking()
	block.Kind = domain.KindBlock
	block.ClientID = nil

	repo.On("GetByID", mock.Anything, int64(1)).Return(block, nil)
	repo.On("Cancel", mock.Anything, int64(1), domain.StatusCancelledByBusiness, (*string)(nil)).Return(nil)

	_, err := newService(repo).Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: managerID})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCancel_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(1)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := newService(repo).Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("already completed", func(t *testing.T) {
		repo := &mockBookingRepo{}
		b := confirmedBooking()
		b.Status = domain.StatusCompleted
		repo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

		_, err := newService(repo).Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
		assert.ErrorIs(t, err, ErrCannotCancel)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stranger", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)

		_, err := newService(repo).Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("connection reset"))

		_, err := newService(repo).Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetBusinessBookings(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newService(repo)
	status := "confirmed"

	repo.On("GetByBusinessWithFilter", mock.Anything, mock.MatchedBy(func(f domain.BusinessBookingsFilter) bool {
		return f.BusinessID == 42 && f.Status != nil && *f.Status == domain.StatusConfirmed && !f.IncludeInactive
	})).Return([]*domain.Booking{confirmedBooking()}, nil)

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     managerID,
		BusinessID: 42,
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "reservation", resp.Bookings[0].Kind)
	repo.AssertExpectations(t)
}

func TestGetBusinessBookings_NotManager(t *testing.T) {
	repo := &mockBookingRepo{}

	_, err := newService(repo).GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     clientID,
		BusinessID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "GetByBusinessWithFilter", mock.Anything, mock.Anything)
}

func TestGetBusinessBookings_InvalidFilter(t *testing.T) {
	svc := newService(&mockBookingRepo{})
	bad := "archived"

	_, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{UserID: managerID, BusinessID: 42, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		UserID:     managerID,
		BusinessID: 42,
		From:       &from,
		To:         &from,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newService(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusCompleted).Return(nil)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: managerID, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: managerID, Status: "cancelled_by_client"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{name: "confirm pending", from: domain.StatusPending, to: "confirmed"},
		{name: "decline pending", from: domain.StatusPending, to: "declined"},
		{name: "no-show of confirmed", from: domain.StatusConfirmed, to: "no_show"},
		{name: "complete pending", from: domain.StatusPending, to: "completed", wantErr: ErrInvalidStatus},
		{name: "back to pending", from: domain.StatusConfirmed, to: "pending", wantErr: ErrInvalidStatus},
		{name: "decline confirmed", from: domain.StatusConfirmed, to: "declined", wantErr: ErrInvalidStatus},
		{name: "reopen declined", from: domain.StatusDeclined, to: "confirmed", wantErr: ErrInvalidStatus},
		{name: "reopen completed", from: domain.StatusCompleted, to: "no_show", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := confirmedBooking()
			b.Status = tt.from

			repo := &mockBookingRepo{}
			repo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
			repo.On("UpdateStatus", mock.Anything, int64(1), mock.Anything).Return(nil)

			resp, err := newService(repo).UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: managerID, Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
		})
	}
}

func TestUpdateStatus_ClientIsNotManager(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)

	_, err := newService(repo).UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: clientID, Status: "completed"})
	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, bookingRepo.ErrBookingNotFound)

	svc := newService(repo)

	resp, err := svc.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), 1, managerID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 2, clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_AccessCheckError(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(confirmedBooking(), nil)

	managers := &mockManagers{}
	managers.On("IsManager", mock.Anything, int64(42), int64(strangerID)).Return(false, errors.New("timeout"))

	_, err := NewService(repo, managers, logger.NewNop()).GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrInternal)
}
