package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	confirmPayment "github.com/m04kA/marche-portal/internal/usecase/confirm_payment"
)

// SignatureHeader заголовок с подписью Stripe
const SignatureHeader = "Stripe-Signature"

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSignature   = "некорректная подпись"
	msgBookingNotFound    = "бронирование не найдено"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Подпись считается по сырому телу, поэтому тело читается без декодирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, handlers.MaxBodySize))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		Payload:   payload,
		Signature: r.Header.Get(SignatureHeader),
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidSignature):
			h.logger.Warn("POST /webhooks/stripe - Invalid signature: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, confirmPayment.ErrInvalidPayload):
			h.logger.Warn("POST /webhooks/stripe - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		// Stripe повторит доставку, если бронирование появится позже
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /webhooks/stripe - Booking not found: %v", err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /webhooks/stripe - Failed to process event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/stripe - Event processed: event_id=%s, type=%s, booking_id=%d, action=%s",
		result.EventID, result.EventType, result.BookingID, result.Action)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
