package create_event

import (
	"fmt"
	"time"

	"github.com/m04kA/marche-portal/internal/service/events/models"
)

// CreateEventRequest HTTP request model
type CreateEventRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Prefecture    string  `json:"prefecture"`
	EventType     string  `json:"eventType"`
	StartDate     string  `json:"startDate"` // RFC 3339
	EndDate       string  `json:"endDate"`   // RFC 3339
	MaxExhibitors int     `json:"maxExhibitors"`
	IsOnline      bool    `json:"isOnline"`
	MeetingURL    *string `json:"meetingUrl,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateEventRequest) ToServiceRequest(userID int64) (*models.CreateEventRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	return &models.CreateEventRequest{
		UserID:        userID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Prefecture:    r.Prefecture,
		EventType:     r.EventType,
		StartDate:     start,
		EndDate:       end,
		MaxExhibitors: r.MaxExhibitors,
		IsOnline:      r.IsOnline,
		MeetingURL:    r.MeetingURL,
	}, nil
}
