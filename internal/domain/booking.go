package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// PaymentMethod represents how the customer pays for a booking
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentOnSite     PaymentMethod = "ON_SITE"
)

// IsValid returns true for supported payment methods
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCreditCard || p == PaymentOnSite
}

// InitialStatus returns the status a new booking starts in:
// card payments wait for checkout, on-site payments are confirmed at once
func (p PaymentMethod) InitialStatus() BookingStatus {
	if p == PaymentCreditCard {
		return StatusPending
	}
	return StatusConfirmed
}

// Booking represents a reservation of one service occurrence
type Booking struct {
	ID                int64
	UserID            int64
	EventID           int64
	ExhibitorID       int64
	ServiceID         int64
	StartTime         time.Time // inclusive
	EndTime           time.Time // exclusive
	Status            BookingStatus
	PaymentMethod     PaymentMethod
	TotalAmount       int64
	Notes             *string
	CheckoutSessionID *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking blocks its time interval
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// AwaitsPayment returns true if the booking waits for a card payment
func (b *Booking) AwaitsPayment() bool {
	return b.Status == StatusPending && b.PaymentMethod == PaymentCreditCard
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID           *int64     // Бронирования пользователя (опционально)
	EventID          *int64     // Фильтр по событию (опционально)
	ExhibitorID      *int64     // Фильтр по экспоненту (опционально)
	ServiceID        *int64     // Фильтр по услуге (опционально)
	StartFrom        *time.Time // start_time >= StartFrom (опционально)
	StartTo          *time.Time // start_time < StartTo (опционально)
	IncludeCancelled bool       // Включать ли отмененные бронирования
}
