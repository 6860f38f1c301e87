package get_exhibitor_bookings

import (
	"context"

	"github.com/m04kA/marche-portal/internal/service/bookings/models"
)

type BookingService interface {
	GetExhibitorBookings(ctx context.Context, req *models.GetExhibitorBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
