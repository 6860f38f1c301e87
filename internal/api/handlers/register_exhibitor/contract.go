package register_exhibitor

import (
	"context"

	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
)

type ExhibitorService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.ExhibitorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
