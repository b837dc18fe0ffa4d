package save_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability/models"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidRange          = "начало интервала должно быть раньше конца"
	msgInvalidData           = "некорректные данные исключения"
	msgOverlap               = "интервал пересекается с другим исключением на эту дату"
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

// Handle POST /api/v1/businesses/{businessId}/professionals/{professionalId}/availability
// и PUT .../availability/{availabilityId}
// Body: {"date": "2026-11-02", "start": "10:00", "end": "14:00"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("%s /availability - Invalid business ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	professionalID, err := handlers.PathInt64(r, "professionalId")
	if err != nil {
		h.logger.Warn("%s /availability - Invalid professional ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s /availability - Missing user ID", r.Method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SaveAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s /availability - Invalid request body: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.BusinessID = businessID
	req.ProfessionalID = professionalID
	// ID из пути имеет приоритет над телом; для POST его нет
	req.ID = mux.Vars(r)["availabilityId"]

	result, err := h.service.Save(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrOverlap):
			h.logger.Warn("%s /availability - Overlap: business_id=%d, professional_id=%d, date=%s",
				r.Method, businessID, professionalID, req.Date)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("%s /availability - Invalid range: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("%s /availability - Invalid data: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, availability.ErrAvailabilityNotFound):
			h.logger.Warn("%s /availability - Not found: id=%s", r.Method, req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("%s /availability - Access denied: user_id=%d, business_id=%d", r.Method, userID, businessID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s /availability - Failed to save: business_id=%d, error=%v", r.Method, businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}

	h.logger.Info("%s /availability - Saved: id=%s, business_id=%d, professional_id=%d, user_id=%d",
		r.Method, result.ID, businessID, professionalID, userID)
	handlers.RespondJSON(w, status, result)
}
