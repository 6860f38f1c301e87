package register_exhibitor

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
	msgInvalidEventID     = "некорректный ID события"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные экспонента"
	msgEventNotFound      = "событие не найдено"
	msgEventNotPublished  = "событие не опубликовано"
	msgAlreadyRegistered  = "пользователь уже зарегистрирован на событии"
	msgEventFull          = "на событии не осталось мест для экспонентов"
	msgConcurrentUpdate   = "регистрация изменена параллельно, повторите запрос"
)

// Коды ошибок в теле ответа 409
const (
	codeAlreadyRegistered = "AlreadyRegistered"
	codeEventFull         = "EventFull"
	codeConcurrentUpdate  = "ConcurrentUpdate"
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

// Handle POST /api/v1/events/{eventId}/exhibitors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /events/{id}/exhibitors - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RegisterExhibitorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/{id}/exhibitors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), req.ToServiceRequest(eventID, userID))
	if err != nil {
		switch {
		case errors.Is(err, exhibitors.ErrEventNotFound):
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, exhibitors.ErrEventNotPublished):
			handlers.RespondBadRequest(w, msgEventNotPublished)

		case errors.Is(err, exhibitors.ErrInvalidInput):
			h.logger.Warn("POST /events/{id}/exhibitors - Invalid data: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, exhibitors.ErrAlreadyRegistered):
			handlers.RespondConflict(w, codeAlreadyRegistered, msgAlreadyRegistered)

		case errors.Is(err, exhibitors.ErrEventFull):
			h.logger.Warn("POST /events/{id}/exhibitors - Event is full: event_id=%d, user_id=%d", eventID, userID)
			handlers.RespondConflict(w, codeEventFull, msgEventFull)

		case errors.Is(err, exhibitors.ErrConcurrentUpdate):
			handlers.RespondConflict(w, codeConcurrentUpdate, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /events/{id}/exhibitors - Failed to register: event_id=%d, user_id=%d, error=%v",
				eventID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/{id}/exhibitors - Exhibitor registered: event_id=%d, exhibitor_id=%d, user_id=%d",
		eventID, result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
