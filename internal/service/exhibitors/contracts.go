package exhibitors

import (
	"context"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/internal/integrations/sheets"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// ExhibitorRepository интерфейс репозитория экспонентов и их услуг
type ExhibitorRepository interface {
	Create(ctx context.Context, exhibitor *domain.Exhibitor) (*domain.Exhibitor, error)
	GetByID(ctx context.Context, id int64) (*domain.Exhibitor, error)
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Exhibitor, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	UpdateInterval(ctx context.Context, id int64, intervalMinutes int) (*domain.Exhibitor, error)
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	ListServices(ctx context.Context, exhibitorID int64) ([]*domain.Service, error)
}

// Exporter интерфейс фоновой выгрузки в таблицу
type Exporter interface {
	ExportExhibitor(row sheets.ExhibitorRow) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
