package sheets

import (
	"strconv"
	"time"
)

// BookingRow строка листа бронирований
type BookingRow struct {
	BookingID     int64
	EventID       int64
	ExhibitorID   int64
	ServiceID     int64
	UserID        int64
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	PaymentMethod string
	TotalAmount   int64
	CreatedAt     time.Time
}

func (r BookingRow) values() []interface{} {
	return []interface{}{
		strconv.FormatInt(r.BookingID, 10),
		strconv.FormatInt(r.EventID, 10),
		strconv.FormatInt(r.ExhibitorID, 10),
		strconv.FormatInt(r.ServiceID, 10),
		strconv.FormatInt(r.UserID, 10),
		r.StartTime.Format(time.RFC3339),
		r.EndTime.Format(time.RFC3339),
		r.Status,
		r.PaymentMethod,
		r.TotalAmount,
		r.CreatedAt.Format(time.RFC3339),
	}
}

// ExhibitorRow строка листа экспонентов
type ExhibitorRow struct {
	ExhibitorID  int64
	EventID      int64
	UserID       int64
	Name         string
	BusinessName string
	Category     string
	CreatedAt    time.Time
}

func (r ExhibitorRow) values() []interface{} {
	return []interface{}{
		strconv.FormatInt(r.ExhibitorID, 10),
		strconv.FormatInt(r.EventID, 10),
		strconv.FormatInt(r.UserID, 10),
		r.Name,
		r.BusinessName,
		r.Category,
		r.CreatedAt.Format(time.RFC3339),
	}
}
