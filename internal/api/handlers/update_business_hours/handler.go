package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "некорректное расписание: интервалы должны быть корректными и не пересекаться"
	msgUnknownTemplate    = "неизвестный шаблон расписания"
	msgInvalidData        = "нужно передать либо расписание, либо шаблон"
	msgForbidden          = "нет прав на изменение расписания бизнеса"
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

// Handle PUT /api/v1/businesses/{businessId}/hours
// Body: {"professionalId": 7, "hours": {...}} или {"template": "weekdays-split"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/hours - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReplaceHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Replace(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidHours):
			h.logger.Warn("PUT /businesses/{id}/hours - Invalid hours: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, hours.ErrUnknownTemplate):
			h.logger.Warn("PUT /businesses/{id}/hours - Unknown template: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgUnknownTemplate)

		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/hours - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, hours.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/hours - Access denied: business_id=%d, user_id=%d", businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /businesses/{id}/hours - Failed to save hours: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/hours - Hours saved: business_id=%d, professional_id=%v, user_id=%d",
		businessID, req.ProfessionalID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
