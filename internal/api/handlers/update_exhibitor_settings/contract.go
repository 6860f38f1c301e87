package update_exhibitor_settings

import (
	"context"

	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
)

type ExhibitorService interface {
	UpdateSettings(ctx context.Context, id int64, req *models.UpdateSettingsRequest) (*models.ExhibitorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
