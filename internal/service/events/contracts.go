package events

import (
	"context"

	"github.com/m04kA/marche-portal/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListPublished(ctx context.Context, filter domain.EventsFilter) ([]*domain.Event, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
