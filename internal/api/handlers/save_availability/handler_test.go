package save_availability

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
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Save(ctx context.Context, req *models.SaveAvailabilityRequest) (*models.AvailabilityResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityResponse), args.Error(1)
}

func serve(svc *mockService, method, target, payload string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability", h.Handle).
		Methods(http.MethodPost)
	r.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability/{availabilityId}", h.Handle).
		Methods(http.MethodPut)

	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set(middleware.UserIDHeader, "5")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const body = `{"date":"2026-11-02","start":"10:00","end":"14:00"}`

func TestHandle_Create(t *testing.T) {
	svc := &mockService{}
	svc.On("Save", mock.Anything, mock.MatchedBy(func(req *models.SaveAvailabilityRequest) bool {
		return req.ID == "" && req.BusinessID == 42 && req.ProfessionalID == 7 && req.UserID == 5 && req.Start == "10:00"
	})).Return(&models.AvailabilityResponse{ID: "new"}, nil)

	rec := serve(svc, http.MethodPost, "/businesses/42/professionals/7/availability", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_EditUsesPathID(t *testing.T) {
	const id = "0b9f6c1e-7d4a-4a57-9a39-2f2d4c8e6a11"
	svc := &mockService{}
	svc.On("Save", mock.Anything, mock.MatchedBy(func(req *models.SaveAvailabilityRequest) bool {
		return req.ID == id
	})).Return(&models.AvailabilityResponse{ID: id}, nil)

	rec := serve(svc, http.MethodPut, "/businesses/42/professionals/7/availability/"+id,
		`{"id":"ignored","date":"2026-11-02","start":"10:00","end":"14:00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"overlap", fmt.Errorf("%w: 12:00-15:00", availability.ErrOverlap), http.StatusConflict},
		{"invalid range", availability.ErrInvalidRange, http.StatusBadRequest},
		{"invalid input", availability.ErrInvalidInput, http.StatusBadRequest},
		{"not found", availability.ErrAvailabilityNotFound, http.StatusNotFound},
		{"not a manager", availability.ErrAccessDenied, http.StatusForbidden},
		{"internal", availability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Save", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(svc, http.MethodPost, "/businesses/42/professionals/7/availability", body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/availability",
		NewHandler(&mockService{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/businesses/42/professionals/7/availability", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
