package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// ExhibitorRepository интерфейс репозитория экспонентов и услуг
type ExhibitorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Exhibitor, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByService(ctx context.Context, serviceID int64) ([]*domain.Booking, error)
}

// Metrics счетчик сгенерированных слотов
type Metrics interface {
	ObserveSlots(count int)
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
