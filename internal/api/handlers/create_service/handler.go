package create_service

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
	msgInvalidData        = "некорректные данные услуги"
	msgNotFound           = "экспонент не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/exhibitors/{exhibitorId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	exhibitorID, err := strconv.ParseInt(mux.Vars(r)["exhibitorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /exhibitors/{id}/services - Invalid exhibitor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExhibitorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /exhibitors/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddService(r.Context(), req.ToServiceRequest(exhibitorID, userID))
	if err != nil {
		switch {
		case errors.Is(err, exhibitors.ErrExhibitorNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, exhibitors.ErrAccessDenied):
			h.logger.Warn("POST /exhibitors/{id}/services - Access denied: exhibitor_id=%d, user_id=%d",
				exhibitorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, exhibitors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /exhibitors/{id}/services - Failed to add service: exhibitor_id=%d, error=%v",
				exhibitorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /exhibitors/{id}/services - Service added: exhibitor_id=%d, service_id=%d",
		exhibitorID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
