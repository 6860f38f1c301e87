package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/marche-portal/internal/domain"
	bookingRepo "github.com/m04kA/marche-portal/internal/infra/storage/booking"
	exhibitorRepo "github.com/m04kA/marche-portal/internal/infra/storage/exhibitor"
	"github.com/m04kA/marche-portal/internal/service/bookings/models"
	"github.com/m04kA/marche-portal/pkg/logger"
	"github.com/m04kA/marche-portal/pkg/ptr"
)

const (
	customerID = int64(100)
	ownerID    = int64(200)
	strangerID = int64(300)
)

type fakeBookings struct {
	bookings  map[int64]*domain.Booking
	filter    domain.BookingsFilter
	listErr   error
	cancelErr error
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.ExhibitorID != nil && b.ExhibitorID != *filter.ExhibitorID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookings) Cancel(_ context.Context, id int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if !b.IsActive() {
		return bookingRepo.ErrStatusChanged
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	return nil
}

type fakeExhibitors struct {
	exhibitors map[int64]*domain.Exhibitor
}

func (f *fakeExhibitors) GetByID(_ context.Context, id int64) (*domain.Exhibitor, error) {
	e, ok := f.exhibitors[id]
	if !ok {
		return nil, exhibitorRepo.ErrExhibitorNotFound
	}
	return e, nil
}

func newTestService() (*Service, *fakeBookings) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	bookings := &fakeBookings{bookings: map[int64]*domain.Booking{
		1: {ID: 1, UserID: customerID, ExhibitorID: 10, ServiceID: 5, StartTime: start, EndTime: start.Add(30 * time.Minute),
			Status: domain.StatusConfirmed, PaymentMethod: domain.PaymentOnSite, TotalAmount: 1500},
		2: {ID: 2, UserID: customerID, ExhibitorID: 10, ServiceID: 5, StartTime: start.Add(time.Hour), EndTime: start.Add(90 * time.Minute),
			Status: domain.StatusCancelled, PaymentMethod: domain.PaymentCreditCard, TotalAmount: 1500},
		3: {ID: 3, UserID: strangerID, ExhibitorID: 11, ServiceID: 6, StartTime: start, EndTime: start.Add(time.Hour),
			Status: domain.StatusPending, PaymentMethod: domain.PaymentCreditCard, TotalAmount: 4000},
	}}
	exhibitors := &fakeExhibitors{exhibitors: map[int64]*domain.Exhibitor{
		10: {ID: 10, UserID: ownerID},
		11: {ID: 11, UserID: strangerID},
	}}
	return NewService(bookings, exhibitors, logger.NewNop()), bookings
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		id      int64
		wantErr error
	}{
		{name: "booking author", userID: customerID, id: 1},
		{name: "exhibitor owner", userID: ownerID, id: 1},
		{name: "stranger", userID: strangerID, id: 1, wantErr: ErrAccessDenied},
		{name: "missing booking", userID: customerID, id: 42, wantErr: ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()

			resp, err := svc.GetByID(context.Background(), tt.id, tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, resp.ID)
			assert.Equal(t, "2025-06-10T10:00:00Z", resp.StartTime)
			assert.Equal(t, "2025-06-10T10:30:00Z", resp.EndTime)
			assert.Equal(t, "CONFIRMED", resp.Status)
		})
	}
}

func TestGetUserBookings(t *testing.T) {
	svc, bookings := newTestService()

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  customerID,
		EventID: ptr.Ptr(int64(1)),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Equal(t, customerID, *bookings.filter.UserID)
	assert.Equal(t, int64(1), *bookings.filter.EventID)
	assert.False(t, bookings.filter.IncludeCancelled)

	t.Run("invalid user", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository error", func(t *testing.T) {
		bookings.listErr = errors.New("connection refused")
		defer func() { bookings.listErr = nil }()
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: customerID})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetExhibitorBookings(t *testing.T) {
	svc, bookings := newTestService()
	from := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	resp, err := svc.GetExhibitorBookings(context.Background(), &models.GetExhibitorBookingsRequest{
		UserID:           ownerID,
		ExhibitorID:      10,
		StartFrom:        &from,
		StartTo:          &to,
		IncludeCancelled: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, from, *bookings.filter.StartFrom)
	assert.True(t, bookings.filter.IncludeCancelled)

	t.Run("not the owner", func(t *testing.T) {
		_, err := svc.GetExhibitorBookings(context.Background(), &models.GetExhibitorBookingsRequest{UserID: customerID, ExhibitorID: 10})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown exhibitor", func(t *testing.T) {
		_, err := svc.GetExhibitorBookings(context.Background(), &models.GetExhibitorBookingsRequest{UserID: ownerID, ExhibitorID: 99})
		assert.ErrorIs(t, err, ErrExhibitorNotFound)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.GetExhibitorBookings(context.Background(), &models.GetExhibitorBookingsRequest{
			UserID: ownerID, ExhibitorID: 10, StartFrom: &to, StartTo: &from,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("author cancels confirmed booking", func(t *testing.T) {
		svc, bookings := newTestService()

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		require.NotNil(t, resp.CancelledAt)
		assert.False(t, bookings.bookings[1].IsActive())
	})

	t.Run("exhibitor owner cancels", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
		assert.NoError(t, err)
	})

	t.Run("already cancelled", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: customerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("stranger", func(t *testing.T) {
		svc, bookings := newTestService()
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.True(t, bookings.bookings[1].IsActive())
	})

	t.Run("cancelled concurrently", func(t *testing.T) {
		svc, bookings := newTestService()
		bookings.cancelErr = bookingRepo.ErrStatusChanged
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: customerID})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
