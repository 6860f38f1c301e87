package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/marche-portal/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	EventID         int64    `json:"eventId"`
	ExhibitorID     int64    `json:"exhibitorId"`
	ServiceID       int64    `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes"`
	IntervalMinutes int      `json:"intervalMinutes"`
	Slots           []string `json:"slots"` // RFC 3339
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.Format(time.RFC3339)
	}

	return &AvailableSlotsResponse{
		EventID:         resp.EventID,
		ExhibitorID:     resp.ExhibitorID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		IntervalMinutes: resp.IntervalMinutes,
		Slots:           slots,
	}
}
