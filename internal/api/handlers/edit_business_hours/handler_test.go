package edit_business_hours

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Edit(ctx context.Context, businessID int64, day domain.Weekday, req *models.EditDayRequest) (*models.HoursResponse, error) {
	args := m.Called(ctx, businessID, day, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HoursResponse), args.Error(1)
}

func patch(svc *mockService, target, payload string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/businesses/{businessId}/hours/days/{day}", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(payload))
	req.Header.Set(middleware.UserIDHeader, "1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Edit", mock.Anything, int64(42), domain.Friday, mock.MatchedBy(func(req *models.EditDayRequest) bool {
		return req.Op == models.OpSetBound && *req.Index == 0 && req.Bound == "end" && req.Value == "13:00"
	})).Return(&models.HoursResponse{BusinessID: 42}, nil)

	rec := patch(svc, "/businesses/42/hours/days/friday", `{"op":"set_bound","index":0,"bound":"end","value":"13:00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("Edit", mock.Anything, int64(42), domain.Monday, mock.Anything).
		Return(nil, fmt.Errorf("%w: overlap", hours.ErrInvalidHours)).Once()
	svc.On("Edit", mock.Anything, int64(42), domain.Monday, mock.Anything).
		Return(nil, fmt.Errorf("%w: unknown op", hours.ErrInvalidInput)).Once()
	svc.On("Edit", mock.Anything, int64(42), domain.Monday, mock.Anything).
		Return(nil, hours.ErrAccessDenied).Once()

	assert.Equal(t, http.StatusUnprocessableEntity, patch(svc, "/businesses/42/hours/days/1", `{"op":"add_range"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(svc, "/businesses/42/hours/days/mon", `{"op":"rotate"}`).Code)
	assert.Equal(t, http.StatusForbidden, patch(svc, "/businesses/42/hours/days/monday", `{"op":"add_range"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch(svc, "/businesses/42/hours/days/funday", `{"op":"add_range"}`).Code)
}
