package update_exhibitor_settings

import (
	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	IntervalMinutes *int `json:"intervalMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:          userID,
		IntervalMinutes: r.IntervalMinutes,
	}
}
