package bookings

import (
	"context"

	"github.com/m04kA/marche-portal/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// ExhibitorRepository интерфейс репозитория экспонентов
type ExhibitorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Exhibitor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
