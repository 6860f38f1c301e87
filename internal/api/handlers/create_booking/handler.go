package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	createBooking "github.com/m04kA/marche-portal/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTime           = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidInput          = "некорректные данные бронирования"
	msgEventNotFound         = "событие не найдено"
	msgEventNotPublished     = "событие не опубликовано"
	msgExhibitorNotFound     = "экспонент не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceMismatch       = "услуга не принадлежит экспоненту этого события"
	msgBookingConflict       = "выбранный временной слот уже занят"
	msgPastSlot              = "нельзя забронировать слот в прошлом"
	msgOutOfSchedule         = "слот вне расписания события"
	msgInvalidConfiguration  = "некорректная конфигурация расписания услуги"
	msgPaymentUnavailable    = "оплата картой недоступна"
	msgPaymentFailed         = "не удалось создать оплату, попробуйте позже"
	codeBookingConflict      = "BookingConflict"
	codePastSlotRejected     = "PastSlotRejected"
	codeSlotOutOfSchedule    = "SlotOutOfSchedule"
	codeInvalidConfiguration = "InvalidConfiguration"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, &req, userID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, service_id=%d, status=%s",
		result.Booking.ID, userID, req.ServiceID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *CreateBookingRequest, userID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrBookingConflict):
		h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, service_id=%d, start=%s",
			userID, req.ServiceID, req.StartTime)
		handlers.RespondConflict(w, codeBookingConflict, msgBookingConflict)

	case errors.Is(err, createBooking.ErrPastSlotRejected):
		h.logger.Warn("POST /bookings - Past slot: user_id=%d, start=%s", userID, req.StartTime)
		handlers.RespondUnprocessable(w, codePastSlotRejected, msgPastSlot)

	case errors.Is(err, createBooking.ErrSlotOutOfSchedule):
		h.logger.Warn("POST /bookings - Out of schedule: user_id=%d, start=%s", userID, req.StartTime)
		handlers.RespondUnprocessable(w, codeSlotOutOfSchedule, msgOutOfSchedule)

	case errors.Is(err, createBooking.ErrInvalidConfiguration):
		h.logger.Warn("POST /bookings - Invalid configuration: service_id=%d, error=%v", req.ServiceID, err)
		handlers.RespondUnprocessable(w, codeInvalidConfiguration, msgInvalidConfiguration)

	case errors.Is(err, createBooking.ErrEventNotFound):
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, createBooking.ErrExhibitorNotFound):
		handlers.RespondNotFound(w, msgExhibitorNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrServiceMismatch):
		h.logger.Warn("POST /bookings - Service mismatch: event_id=%d, exhibitor_id=%d, service_id=%d",
			req.EventID, req.ExhibitorID, req.ServiceID)
		handlers.RespondNotFound(w, msgServiceMismatch)

	case errors.Is(err, createBooking.ErrEventNotPublished):
		handlers.RespondBadRequest(w, msgEventNotPublished)

	case errors.Is(err, createBooking.ErrPaymentUnavailable):
		handlers.RespondBadRequest(w, msgPaymentUnavailable)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrPaymentFailed):
		h.logger.Error("POST /bookings - Payment failed: user_id=%d, service_id=%d, error=%v", userID, req.ServiceID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, service_id=%d, error=%v",
			userID, req.ServiceID, err)
		handlers.RespondInternalError(w)
	}
}
