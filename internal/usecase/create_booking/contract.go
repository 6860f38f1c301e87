package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/internal/integrations/payment"
	"github.com/m04kA/marche-portal/internal/integrations/sheets"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// ExhibitorRepository интерфейс репозитория экспонентов и услуг
// Внутри транзакции GetServiceByID блокирует строку услуги
type ExhibitorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Exhibitor, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListActiveByService(ctx context.Context, serviceID int64) ([]*domain.Booking, error)
	SetCheckoutSession(ctx context.Context, id int64, sessionID string) error
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// PaymentClient интерфейс клиента оплаты картой
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
}

// Exporter интерфейс фоновой выгрузки в таблицу
type Exporter interface {
	ExportBooking(row sheets.BookingRow) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated(paymentMethod string)
	IncBookingConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
