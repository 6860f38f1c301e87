package create_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/service/events"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные события"
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

// Handle POST /api/v1/events
// Создает черновик, организатором становится текущий пользователь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /events - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, events.ErrInvalidInput) {
			h.logger.Warn("POST /events - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /events - Failed to create event: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /events - Event created: event_id=%d, organizer_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
