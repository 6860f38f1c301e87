package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/marche-portal/internal/usecase/get_available_slots"
)

const (
	msgInvalidEventID        = "некорректный ID события"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgMissingServiceID      = "ID услуги обязателен"
	msgEventNotFound         = "событие не найдено"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceNotInEvent     = "услуга не участвует в этом событии"
	msgInvalidConfiguration  = "некорректная конфигурация расписания услуги"
	codeInvalidConfiguration = "InvalidConfiguration"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/available-slots
// Query params: serviceId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil || eventID <= 0 {
		h.logger.Warn("GET /events/{id}/available-slots - Invalid event ID: %q", mux.Vars(r)["eventId"])
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /events/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /events/{id}/available-slots - Invalid service ID: %q", serviceIDStr)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		EventID:   eventID,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEventNotFound):
			h.logger.Warn("GET /events/{id}/available-slots - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /events/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotInEvent):
			h.logger.Warn("GET /events/{id}/available-slots - Service not in event: event_id=%d, service_id=%d",
				eventID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotInEvent)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfiguration):
			h.logger.Warn("GET /events/{id}/available-slots - Invalid configuration: event_id=%d, service_id=%d, error=%v",
				eventID, serviceID, err)
			handlers.RespondUnprocessable(w, codeInvalidConfiguration, msgInvalidConfiguration)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /events/{id}/available-slots - Failed to get slots: event_id=%d, service_id=%d, error=%v",
				eventID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /events/{id}/available-slots - Slots retrieved: event_id=%d, service_id=%d, slots_count=%d",
		eventID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
