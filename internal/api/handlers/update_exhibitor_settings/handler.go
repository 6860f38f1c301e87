package update_exhibitor_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/service/exhibitors"
)

const (
	msgInvalidExhibitorID = "некорректный ID экспонента"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "экспонент не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные настройки экспонента"
	msgConcurrentUpdate   = "настройки изменены параллельно, повторите запрос"
)

type Handler struct {
	service ExhibitorService
	logger  Logger
}

func NewHandler(service ExhibitorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/exhibitors/{exhibitorId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	exhibitorID, err := strconv.ParseInt(mux.Vars(r)["exhibitorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /exhibitors/{id}/settings - Invalid exhibitor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExhibitorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /exhibitors/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит, что пользователь владеет экспонентом
	result, err := h.service.UpdateSettings(r.Context(), exhibitorID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, exhibitors.ErrExhibitorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, exhibitors.ErrAccessDenied):
			h.logger.Warn("PATCH /exhibitors/{id}/settings - Access denied: exhibitor_id=%d, user_id=%d",
				exhibitorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, exhibitors.ErrInvalidInput):
			h.logger.Warn("PATCH /exhibitors/{id}/settings - Invalid data: exhibitor_id=%d, error=%v",
				exhibitorID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, exhibitors.ErrConcurrentUpdate):
			handlers.RespondConflict(w, "", msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /exhibitors/{id}/settings - Failed to update settings: exhibitor_id=%d, error=%v",
				exhibitorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /exhibitors/{id}/settings - Settings updated: exhibitor_id=%d, interval=%d",
		exhibitorID, result.IntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
