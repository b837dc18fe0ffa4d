package get_business_hours

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidProfessionalID = "некорректный ID мастера"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/hours
// Query params: professionalId (опционально, без него - часы бизнеса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/hours - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	professionalID, err := handlers.QueryInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/hours - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.service.Get(r.Context(), businessID, professionalID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/hours - Failed to get hours: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/hours - Hours retrieved: business_id=%d, professional_id=%v",
		businessID, professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleTemplates GET /api/v1/hours/templates
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Templates())
}
