package register_exhibitor

import (
	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
)

// RegisterExhibitorRequest HTTP request model
type RegisterExhibitorRequest struct {
	Name            string  `json:"name"`
	BusinessName    *string `json:"businessName,omitempty"`
	Introduction    string  `json:"introduction"`
	Category        string  `json:"category"`
	IntervalMinutes int     `json:"intervalMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RegisterExhibitorRequest) ToServiceRequest(eventID, userID int64) *models.RegisterRequest {
	return &models.RegisterRequest{
		UserID:          userID,
		EventID:         eventID,
		Name:            r.Name,
		BusinessName:    r.BusinessName,
		Introduction:    r.Introduction,
		Category:        r.Category,
		IntervalMinutes: r.IntervalMinutes,
	}
}
