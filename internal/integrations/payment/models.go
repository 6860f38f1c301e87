package payment

import "time"

// Типы событий Stripe, которые обрабатывает сервис
const (
	EventCheckoutCompleted     = "checkout.session.completed"
	EventCheckoutExpired       = "checkout.session.expired"
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	EventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
)

// IsCheckoutEvent возвращает true для событий, в data которых лежит checkout-сессия
func IsCheckoutEvent(eventType string) bool {
	switch eventType {
	case EventCheckoutCompleted, EventCheckoutExpired, EventAsyncPaymentSucceeded, EventAsyncPaymentFailed:
		return true
	}
	return false
}

// MetadataBookingID ключ metadata checkout-сессии с ID бронирования
const MetadataBookingID = "bookingId"

// CheckoutRequest параметры оплаты бронирования картой
type CheckoutRequest struct {
	BookingID   int64
	ServiceName string
	Amount      int64 // в минимальных единицах валюты (для JPY - иены)
	StartTime   time.Time
}

// CheckoutSession созданная checkout-сессия
type CheckoutSession struct {
	ID        string
	URL       string
	ExpiresAt time.Time
}

// WebhookEvent разобранное событие Stripe
type WebhookEvent struct {
	ID            string
	Type          string
	SessionID     string
	BookingID     int64 // 0, если в metadata нет bookingId
	PaymentStatus string
}
