package list_events

import (
	"errors"
	"net/http"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/service/events"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/events
// Query params: prefecture, eventType, startFrom, startTo (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /events - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListPublished(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, events.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /events - Failed to list events: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /events - Events listed: count=%d", len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result.Events)
}
