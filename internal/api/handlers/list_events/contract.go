package list_events

import (
	"context"

	"github.com/m04kA/marche-portal/internal/service/events/models"
)

type EventService interface {
	ListPublished(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
