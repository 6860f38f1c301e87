package models

import (
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64 `json:"userId"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID           int64  `json:"userId"`
	EventID          *int64 `json:"eventId,omitempty"`   // Фильтр по событию (опционально)
	ServiceID        *int64 `json:"serviceId,omitempty"` // Фильтр по услуге (опционально)
	IncludeCancelled bool   `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	userID := r.UserID
	return domain.BookingsFilter{
		UserID:           &userID,
		EventID:          r.EventID,
		ServiceID:        r.ServiceID,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// GetExhibitorBookingsRequest запрос на получение бронирований экспонента
type GetExhibitorBookingsRequest struct {
	UserID           int64      `json:"userId"`
	ExhibitorID      int64      `json:"exhibitorId"`
	StartFrom        *time.Time `json:"startFrom,omitempty"` // Начало периода (опционально)
	StartTo          *time.Time `json:"startTo,omitempty"`   // Конец периода, не включительно (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetExhibitorBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	exhibitorID := r.ExhibitorID
	return domain.BookingsFilter{
		ExhibitorID:      &exhibitorID,
		StartFrom:        r.StartFrom,
		StartTo:          r.StartTo,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	EventID       int64   `json:"eventId"`
	ExhibitorID   int64   `json:"exhibitorId"`
	ServiceID     int64   `json:"serviceId"`
	StartTime     string  `json:"startTime"` // RFC 3339
	EndTime       string  `json:"endTime"`   // RFC 3339
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	TotalAmount   int64   `json:"totalAmount"`
	Notes         *string `json:"notes,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
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
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
