package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/marche-portal/internal/domain"
	bookingRepo "github.com/m04kA/marche-portal/internal/infra/storage/booking"
	exhibitorRepo "github.com/m04kA/marche-portal/internal/infra/storage/exhibitor"
	"github.com/m04kA/marche-portal/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	exhibitorRepo ExhibitorRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	exhibitorRepo ExhibitorRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		exhibitorRepo: exhibitorRepo,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может его автор или владелец экспонента
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя, упорядоченные по времени начала
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, event=%v, service=%v",
		req.UserID, derefOrNil(req.EventID), derefOrNil(req.ServiceID))

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetExhibitorBookings получает бронирования услуг экспонента
// Доступно только владельцу экспонента
func (s *Service) GetExhibitorBookings(ctx context.Context, req *models.GetExhibitorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetExhibitorBookings: fetching bookings for exhibitor=%d, user=%d, includeCancelled=%t",
		req.ExhibitorID, req.UserID, req.IncludeCancelled)

	if req.StartFrom != nil && req.StartTo != nil && !req.StartTo.After(*req.StartFrom) {
		return nil, fmt.Errorf("%w: startTo must be after startFrom", ErrInvalidInput)
	}

	if err := s.checkExhibitorOwner(ctx, req.ExhibitorID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetExhibitorBookings: repository error for exhibitor=%d: %v", req.ExhibitorID, err)
		return nil, fmt.Errorf("%w: GetExhibitorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetExhibitorBookings: fetched %d bookings for exhibitor=%d", len(bookings), req.ExhibitorID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может автор бронирования или владелец экспонента
// Отмененное бронирование сразу освобождает слот
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return nil, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusChanged):
			s.logger.Warn("Cancel: booking id=%d was cancelled concurrently", bookingID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled, slot %s released", bookingID, cancelled.StartTime.Format("2006-01-02 15:04"))
	return models.FromDomainBooking(cancelled), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess пропускает автора бронирования и владельца экспонента
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkExhibitorOwner(ctx, booking.ExhibitorID, userID); err != nil {
		if errors.Is(err, ErrInternal) {
			return err
		}
		return ErrAccessDenied
	}

	return nil
}

// checkExhibitorOwner проверяет, что пользователь зарегистрировал экспонента
func (s *Service) checkExhibitorOwner(ctx context.Context, exhibitorID int64, userID int64) error {
	exhibitor, err := s.exhibitorRepo.GetByID(ctx, exhibitorID)
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrExhibitorNotFound) {
			s.logger.Warn("checkExhibitorOwner: exhibitor id=%d not found", exhibitorID)
			return ErrExhibitorNotFound
		}
		s.logger.Error("checkExhibitorOwner: failed to get exhibitor id=%d: %v", exhibitorID, err)
		return fmt.Errorf("%w: checkExhibitorOwner - failed to get exhibitor: %v", ErrInternal, err)
	}

	if !exhibitor.IsOwnedBy(userID) {
		s.logger.Warn("checkExhibitorOwner: user=%d does not own exhibitor=%d", userID, exhibitorID)
		return ErrAccessDenied
	}

	return nil
}

func derefOrNil(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
