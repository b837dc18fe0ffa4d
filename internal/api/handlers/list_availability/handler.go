package list_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidDate           = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidPeriod         = "дата окончания раньше даты начала"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/availability
// Query params: professionalId, from, to (YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	professionalID, err := handlers.QueryInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListAvailabilityRequest{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /businesses/{id}/availability - Invalid period: business_id=%d", businessID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /businesses/{id}/availability - Failed to list: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/availability - Retrieved %d exceptions: business_id=%d",
		len(result.Availability), businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
