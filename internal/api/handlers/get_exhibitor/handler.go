package get_exhibitor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/service/exhibitors"
)

const (
	msgInvalidExhibitorID = "некорректный ID экспонента"
	msgNotFound           = "экспонент не найден"
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

// Handle GET /api/v1/exhibitors/{exhibitorId}
// Публичный endpoint - без авторизации. Возвращает экспонента вместе с его услугами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	exhibitorID, err := strconv.ParseInt(mux.Vars(r)["exhibitorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /exhibitors/{id} - Invalid exhibitor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExhibitorID)
		return
	}

	result, err := h.service.GetByID(r.Context(), exhibitorID)
	if err != nil {
		if errors.Is(err, exhibitors.ErrExhibitorNotFound) {
			h.logger.Warn("GET /exhibitors/{id} - Exhibitor not found: exhibitor_id=%d", exhibitorID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /exhibitors/{id} - Failed to get exhibitor: exhibitor_id=%d, error=%v",
			exhibitorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /exhibitors/{id} - Exhibitor retrieved: exhibitor_id=%d, services=%d",
		exhibitorID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
