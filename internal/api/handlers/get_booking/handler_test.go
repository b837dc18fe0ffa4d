package get_booking

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

func (m *mockService) GetByID(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func get(svc *mockService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.UserIDHeader, "100")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, int64(1), int64(100)).
		Return(&models.BookingResponse{ID: 1, Status: "confirmed"}, nil)

	rec := get(svc, "/bookings/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("GetByID", mock.Anything, int64(1), int64(100)).Return(nil, tt.err)
		assert.Equal(t, tt.want, get(svc, "/bookings/1").Code, tt.err.Error())
	}

	assert.Equal(t, http.StatusBadRequest, get(&mockService{}, "/bookings/x").Code)
}
