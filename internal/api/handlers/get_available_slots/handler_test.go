package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(uc *mockUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.BusinessID == 42 && *req.ProfessionalID == 7 && req.FreeOnly &&
			req.Date.Format(domain.DateFormat) == "2025-06-02"
	})).Return(&getAvailableSlots.Response{
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		BusinessID:      42,
		DurationMinutes: 30,
		Slots: []domain.Slot{
			{Time: types.MustParse("09:00"), DurationMinutes: 30, ProfessionalID: 7, State: domain.SlotFree},
			{Time: types.MustParse("09:30"), DurationMinutes: 30, ProfessionalID: 7, State: domain.SlotBooked,
				Occupant: &domain.Occupant{BookingID: 3, Kind: domain.KindReservation, ClientName: "Anna"}},
		},
	}, nil)

	rec := serve(uc, "/businesses/42/available-slots?date=2025-06-02&professionalId=7&free=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2025-06-02", body.Date)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "09:00", body.Slots[0].StartTime)
	assert.Equal(t, "free", body.Slots[0].State)
	assert.Nil(t, body.Slots[0].Occupant)
	assert.Equal(t, "Anna", body.Slots[1].Occupant.ClientName)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"bad business id", "/businesses/abc/available-slots?date=2025-06-02"},
		{"missing date", "/businesses/42/available-slots"},
		{"bad date", "/businesses/42/available-slots?date=02.06.2025"},
		{"bad professional", "/businesses/42/available-slots?date=2025-06-02&professionalId=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(uc, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{getAvailableSlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
		rec := serve(uc, "/businesses/42/available-slots?date=2025-06-02")
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}
