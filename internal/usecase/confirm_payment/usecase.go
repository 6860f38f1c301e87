package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/marche-portal/internal/domain"
	bookingRepo "github.com/m04kA/marche-portal/internal/infra/storage/booking"
	"github.com/m04kA/marche-portal/internal/integrations/payment"
)

// Статусы оплаты checkout-сессии, при которых бронирование подтверждается
var paidStatuses = map[string]bool{
	"paid":                 true,
	"no_payment_required": true,
}

// UseCase обрабатывает события оплаты картой
// Повторная доставка одного события дает тот же результат
type UseCase struct {
	payment     PaymentClient
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(payment PaymentClient, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		payment:     payment,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute проверяет подпись и применяет событие к бронированию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Проверяем подпись и разбираем событие
	event, err := uc.payment.ParseWebhook(req.Payload, req.Signature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidPayload) {
			uc.logger.Warn("ConfirmPayment: invalid payload: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		uc.logger.Warn("ConfirmPayment: signature verification failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	resp := &Response{EventID: event.ID, EventType: event.Type, Action: ActionIgnored}

	if !payment.IsCheckoutEvent(event.Type) {
		uc.logger.Info("ConfirmPayment: event %s of type %s acknowledged without action", event.ID, event.Type)
		return resp, nil
	}

	// 2. Находим бронирование
	booking, err := uc.findBooking(ctx, event)
	if err != nil {
		return nil, err
	}
	resp.BookingID = booking.ID
	resp.Status = booking.Status

	// 3. Применяем событие
	// Отложенная оплата (konbini и т.п.) завершается событиями async_payment_*
	switch event.Type {
	case payment.EventCheckoutCompleted, payment.EventAsyncPaymentSucceeded:
		return uc.confirm(ctx, event, booking, resp)
	default:
		return uc.expire(ctx, event, booking, resp)
	}
}

func (uc *UseCase) confirm(ctx context.Context, event *payment.WebhookEvent, booking *domain.Booking, resp *Response) (*Response, error) {
	switch booking.Status {
	case domain.StatusConfirmed:
		uc.logger.Info("ConfirmPayment: booking id=%d already confirmed (event %s)", booking.ID, event.ID)
		resp.Action = ActionAlreadyConfirmed
		return resp, nil
	case domain.StatusCancelled:
		uc.logger.Warn("ConfirmPayment: payment completed for cancelled booking id=%d (event %s), refund required",
			booking.ID, event.ID)
		return resp, nil
	}

	if !paidStatuses[event.PaymentStatus] {
		uc.logger.Info("ConfirmPayment: booking id=%d checkout completed with payment_status=%s, waiting",
			booking.ID, event.PaymentStatus)
		return resp, nil
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusPending, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			// Параллельная доставка того же события или отмена успели раньше
			return uc.reload(ctx, booking.ID, resp)
		}
		uc.logger.Error("ConfirmPayment: failed to confirm booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: booking id=%d confirmed (session %s)", booking.ID, event.SessionID)
	resp.Status = domain.StatusConfirmed
	resp.Action = ActionConfirmed
	return resp, nil
}

func (uc *UseCase) expire(ctx context.Context, event *payment.WebhookEvent, booking *domain.Booking, resp *Response) (*Response, error) {
	if booking.Status != domain.StatusPending {
		uc.logger.Info("ConfirmPayment: %s for booking id=%d in status %s, nothing to do",
			event.Type, booking.ID, booking.Status)
		return resp, nil
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusPending, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			return uc.reload(ctx, booking.ID, resp)
		}
		uc.logger.Error("ConfirmPayment: failed to cancel booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: booking id=%d cancelled by %s (session %s)", booking.ID, event.Type, event.SessionID)
	resp.Status = domain.StatusCancelled
	resp.Action = ActionCancelled
	return resp, nil
}

func (uc *UseCase) findBooking(ctx context.Context, event *payment.WebhookEvent) (*domain.Booking, error) {
	var (
		booking *domain.Booking
		err     error
	)

	switch {
	case event.BookingID > 0:
		booking, err = uc.bookingRepo.GetByID(ctx, event.BookingID)
	case event.SessionID != "":
		booking, err = uc.bookingRepo.GetByCheckoutSessionID(ctx, event.SessionID)
	default:
		uc.logger.Warn("ConfirmPayment: event %s has neither booking id nor session id", event.ID)
		return nil, fmt.Errorf("%w: event %s does not reference a booking", ErrInvalidPayload, event.ID)
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking for event %s not found (booking=%d, session=%s)",
				event.ID, event.BookingID, event.SessionID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get booking for event %s: %v", event.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return booking, nil
}

func (uc *UseCase) reload(ctx context.Context, id int64, resp *Response) (*Response, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	resp.Status = booking.Status
	if booking.Status == domain.StatusConfirmed {
		resp.Action = ActionAlreadyConfirmed
	}
	return resp, nil
}
