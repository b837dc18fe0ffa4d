package get_business_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func get(svc *mockService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/businesses/{businessId}/bookings", NewHandler(svc, nil, logger.NewNop()).Handle).
		Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.UserIDHeader, "5")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("GetBusinessBookings", mock.Anything, mock.MatchedBy(func(req *models.GetBusinessBookingsRequest) bool {
		return req.UserID == 5 && req.BusinessID == 42 && req.ProfessionalID != nil && *req.ProfessionalID == 7
	})).Return(&models.BookingListResponse{}, nil)

	rec := get(svc, "/businesses/42/bookings?professionalId=7")
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{bookings.ErrInvalidInput, http.StatusBadRequest},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("GetBusinessBookings", mock.Anything, mock.Anything).Return(nil, tt.err)
		assert.Equal(t, tt.want, get(svc, "/businesses/42/bookings").Code, tt.err.Error())
	}

	assert.Equal(t, http.StatusBadRequest, get(&mockService{}, "/businesses/42/bookings?from=yesterday").Code)
}
