package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
	createBooking "github.com/m04kA/marche-portal/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventID       int64   `json:"eventId"`
	ExhibitorID   int64   `json:"exhibitorId"`
	ServiceID     int64   `json:"serviceId"`
	StartTime     string  `json:"startTime"`         // RFC 3339
	EndTime       *string `json:"endTime,omitempty"` // RFC 3339, выводится из длительности услуги
	PaymentMethod string  `json:"paymentMethod"`     // CREDIT_CARD | ON_SITE
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	EventID       int64   `json:"eventId"`
	ExhibitorID   int64   `json:"exhibitorId"`
	ServiceID     int64   `json:"serviceId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	TotalAmount   int64   `json:"totalAmount"`
	Notes         *string `json:"notes,omitempty"`
	CheckoutURL   *string `json:"checkoutUrl,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	req := &createBooking.Request{
		UserID:        userID,
		EventID:       r.EventID,
		ExhibitorID:   r.ExhibitorID,
		ServiceID:     r.ServiceID,
		StartTime:     startTime,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
	}

	if r.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		EventID:       b.EventID,
		ExhibitorID:   b.ExhibitorID,
		ServiceID:     b.ServiceID,
		StartTime:     b.StartTime.Format(time.RFC3339),
		EndTime:       b.EndTime.Format(time.RFC3339),
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
		TotalAmount:   b.TotalAmount,
		Notes:         b.Notes,
		CheckoutURL:   resp.CheckoutURL,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}
