package update_business_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
	msgForbidden          = "нет прав на изменение конфигурации бизнеса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/config - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/config - Access denied: business_id=%d, user_id=%d", businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /businesses/{id}/config - Failed to update config: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/config - Config updated successfully: business_id=%d, user_id=%d",
		businessID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
