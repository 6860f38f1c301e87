package create_booking

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/internal/slotengine"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.EventID <= 0 || req.ExhibitorID <= 0 || req.ServiceID <= 0 {
		return fmt.Errorf("%w: eventId, exhibitorId and serviceId must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unsupported paymentMethod %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateOwnership проверяет, что услуга принадлежит экспоненту, а экспонент - событию из запроса
func validateOwnership(req *Request, exhibitor *domain.Exhibitor, service *domain.Service) error {
	if service.ExhibitorID != req.ExhibitorID {
		return fmt.Errorf("%w: service id=%d belongs to exhibitor id=%d", ErrServiceMismatch, service.ID, service.ExhibitorID)
	}
	if exhibitor.EventID != req.EventID {
		return fmt.Errorf("%w: exhibitor id=%d belongs to event id=%d", ErrServiceMismatch, exhibitor.ID, exhibitor.EventID)
	}
	return nil
}

// mapEngineError переводит ошибки slotengine в ошибки use case
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, slotengine.ErrBookingConflict):
		return fmt.Errorf("%w: %v", ErrBookingConflict, err)
	case errors.Is(err, slotengine.ErrPastSlotRejected):
		return fmt.Errorf("%w: %v", ErrPastSlotRejected, err)
	case errors.Is(err, slotengine.ErrSlotOutOfSchedule):
		return fmt.Errorf("%w: %v", ErrSlotOutOfSchedule, err)
	case errors.Is(err, slotengine.ErrInvalidConfiguration):
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
