package publish_event

import (
	"context"

	"github.com/m04kA/marche-portal/internal/service/events/models"
)

type EventService interface {
	Publish(ctx context.Context, id int64, userID int64) (*models.EventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
