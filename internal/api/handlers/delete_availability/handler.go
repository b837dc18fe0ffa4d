package delete_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidID             = "некорректный ID исключения"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "исключение не найдено"
	msgForbidden             = "нет прав на изменение расписания мастеров бизнеса"
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

// Handle DELETE /api/v1/businesses/{businessId}/professionals/{professionalId}/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id := mux.Vars(r)["availabilityId"]
	if err := h.service.Delete(r.Context(), userID, businessID, professionalID, id); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /availability/{id} - Invalid ID: %s", id)
			handlers.RespondBadRequest(w, msgInvalidID)

		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /availability/{id} - Not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: user_id=%d, business_id=%d", userID, businessID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Deleted: id=%s, business_id=%d, user_id=%d", id, businessID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
