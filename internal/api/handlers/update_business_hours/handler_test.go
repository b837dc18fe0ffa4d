package update_business_hours

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Replace(ctx context.Context, businessID int64, req *models.ReplaceHoursRequest) (*models.HoursResponse, error) {
	args := m.Called(ctx, businessID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HoursResponse), args.Error(1)
}

func put(svc *mockService, payload string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/businesses/{businessId}/hours", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/businesses/42/hours", strings.NewReader(payload))
	req.Header.Set(middleware.UserIDHeader, "3")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Template(t *testing.T) {
	svc := &mockService{}
	svc.On("Replace", mock.Anything, int64(42), mock.MatchedBy(func(req *models.ReplaceHoursRequest) bool {
		return req.UserID == 3 && req.Template != nil && *req.Template == "weekdays-split"
	})).Return(&models.HoursResponse{BusinessID: 42}, nil)

	rec := put(svc, `{"template":"weekdays-split"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid hours", hours.ErrInvalidHours, http.StatusBadRequest},
		{"unknown template", hours.ErrUnknownTemplate, http.StatusBadRequest},
		{"invalid input", hours.ErrInvalidInput, http.StatusBadRequest},
		{"not a manager", hours.ErrAccessDenied, http.StatusForbidden},
		{"internal", hours.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Replace", mock.Anything, int64(42), mock.Anything).Return(nil, tt.err)

			rec := put(svc, `{"template":"weekdays-split"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	svc := &mockService{}
	rec := put(svc, `{"template":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}
