package domain

import "time"

// Exhibitor represents a vendor registered for exactly one event
type Exhibitor struct {
	ID              int64
	EventID         int64
	UserID          int64
	Name            string
	BusinessName    *string
	Introduction    string
	Category        string
	IntervalMinutes int // mandatory idle time after each service occurrence
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Buffer returns the idle time enforced after every booked service occurrence
func (e *Exhibitor) Buffer() time.Duration {
	return time.Duration(e.IntervalMinutes) * time.Minute
}

// IsOwnedBy returns true if userID registered the exhibitor
func (e *Exhibitor) IsOwnedBy(userID int64) bool {
	return e.UserID == userID
}

// Service represents a bookable timed service offered by an exhibitor
type Service struct {
	ID              int64
	ExhibitorID     int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           int64 // JPY
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the occupied length of one service occurrence
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
