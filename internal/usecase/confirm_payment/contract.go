package confirm_payment

import (
	"context"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/internal/integrations/payment"
)

// PaymentClient интерфейс проверки webhook платежной системы
type PaymentClient interface {
	ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
