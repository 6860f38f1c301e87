package publish_event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/service/events"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "событие не найдено"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/{eventId}/publish
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /events/{id}/publish - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Publish(r.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrAccessDenied):
			h.logger.Warn("POST /events/{id}/publish - Access denied: event_id=%d, user_id=%d", eventID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /events/{id}/publish - Failed to publish: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/{id}/publish - Event published: event_id=%d", eventID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
