package edit_business_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours"
	"github.com/m04kA/SMC-ScheduleService/internal/service/hours/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidDay         = "некорректный день недели"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "изменение нарушает расписание дня"
	msgInvalidData        = "некорректная операция редактирования"
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

// Handle PATCH /api/v1/businesses/{businessId}/hours/days/{day}
// day: monday..sunday, mon..sun или ISO номер 1..7
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	day, err := domain.ParseWeekday(mux.Vars(r)["day"])
	if err != nil {
		h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.EditDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Edit(r.Context(), businessID, day, &req)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidHours):
			h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Edit rejected: business_id=%d, day=%s, error=%v",
				businessID, day, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidHours)

		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, hours.ErrAccessDenied):
			h.logger.Warn("PATCH /businesses/{id}/hours/days/{day} - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /businesses/{id}/hours/days/{day} - Failed to edit hours: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /businesses/{id}/hours/days/{day} - Day edited: business_id=%d, day=%s, op=%s, user_id=%d",
		businessID, day, req.Op, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
