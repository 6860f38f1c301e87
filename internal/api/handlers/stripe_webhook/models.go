package stripe_webhook

import (
	confirmPayment "github.com/m04kA/marche-portal/internal/usecase/confirm_payment"
)

// WebhookResponse HTTP response model
type WebhookResponse struct {
	EventID   string `json:"eventId"`
	Action    string `json:"action"`
	BookingID int64  `json:"bookingId,omitempty"`
	Status    string `json:"status,omitempty"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP модель
func FromUseCaseResponse(resp *confirmPayment.Response) *WebhookResponse {
	return &WebhookResponse{
		EventID:   resp.EventID,
		Action:    string(resp.Action),
		BookingID: resp.BookingID,
		Status:    string(resp.Status),
	}
}
