package create_service

import (
	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           int64   `json:"price"` // JPY
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest(exhibitorID, userID int64) *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		UserID:          userID,
		ExhibitorID:     exhibitorID,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}
