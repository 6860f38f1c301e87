package get_exhibitor_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/service/bookings"
)

const (
	msgInvalidExhibitorID = "некорректный ID экспонента"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidParams      = "некорректные параметры запроса"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "экспонент не найден"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

// NewHandler создает handler; loc задает часовой пояс параметра date
func NewHandler(service BookingService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/exhibitors/{exhibitorId}/bookings
// Query params: date, from, to, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	exhibitorID, err := strconv.ParseInt(mux.Vars(r)["exhibitorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /exhibitors/{id}/bookings - Invalid exhibitor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExhibitorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /exhibitors/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(exhibitorID, userID,
		query.Get("date"), query.Get("from"), query.Get("to"), query.Get("includeCancelled"), h.location)
	if err != nil {
		h.logger.Warn("GET /exhibitors/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что пользователь владеет экспонентом
	result, err := h.service.GetExhibitorBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /exhibitors/{id}/bookings - Access denied: exhibitor_id=%d, user_id=%d",
				exhibitorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrExhibitorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /exhibitors/{id}/bookings - Failed to get bookings: exhibitor_id=%d, error=%v",
				exhibitorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /exhibitors/{id}/bookings - Bookings retrieved: exhibitor_id=%d, count=%d",
		exhibitorID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
