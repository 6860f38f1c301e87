package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	eventRepo "github.com/m04kA/marche-portal/internal/infra/storage/event"
	exhibitorRepo "github.com/m04kA/marche-portal/internal/infra/storage/exhibitor"
	"github.com/m04kA/marche-portal/internal/slotengine"
)

// UseCase use case для получения доступных слотов услуги на событии
type UseCase struct {
	eventRepo     EventRepository
	exhibitorRepo ExhibitorRepository
	bookingRepo   BookingRepository
	rules         slotengine.Rules
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	exhibitorRepo ExhibitorRepository,
	bookingRepo BookingRepository,
	rules slotengine.Rules,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:     eventRepo,
		exhibitorRepo: exhibitorRepo,
		bookingRepo:   bookingRepo,
		rules:         rules,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Слоты считаются по свежему списку бронирований при каждом запросе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: event=%d, service=%d", req.EventID, req.ServiceID)

	// 1. Валидация входных данных
	if req.EventID <= 0 || req.ServiceID <= 0 {
		uc.logger.Warn("GetAvailableSlots: invalid ids event=%d, service=%d", req.EventID, req.ServiceID)
		return nil, fmt.Errorf("%w: eventId and serviceId must be positive", ErrInvalidInput)
	}

	// 2. Получаем услугу
	service, err := uc.exhibitorRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Получаем экспонента услуги и проверяем, что он участвует в событии
	exhibitor, err := uc.exhibitorRepo.GetByID(ctx, service.ExhibitorID)
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrExhibitorNotFound) {
			uc.logger.Warn("GetAvailableSlots: exhibitor id=%d of service id=%d not found", service.ExhibitorID, service.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get exhibitor id=%d: %v", service.ExhibitorID, err)
		return nil, fmt.Errorf("%w: failed to get exhibitor: %v", ErrInternal, err)
	}
	if exhibitor.EventID != req.EventID {
		uc.logger.Warn("GetAvailableSlots: exhibitor id=%d belongs to event id=%d, not %d",
			exhibitor.ID, exhibitor.EventID, req.EventID)
		return nil, ErrServiceNotInEvent
	}

	// 4. Получаем событие
	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("GetAvailableSlots: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}
	// Черновик не виден посетителям
	if !event.IsPublished() {
		uc.logger.Warn("GetAvailableSlots: event id=%d is not published", req.EventID)
		return nil, ErrEventNotFound
	}

	// 5. Получаем неотмененные бронирования услуги
	bookings, err := uc.bookingRepo.ListActiveByService(ctx, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings of service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots, err := slotengine.GenerateAvailableSlots(uc.rules, *event, *service, *exhibitor, bookings, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, slotengine.ErrInvalidConfiguration) {
			uc.logger.Warn("GetAvailableSlots: invalid configuration for service id=%d: %v", service.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.ObserveSlots(len(slots))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for event=%d, service=%d (bookings=%d)",
		len(slots), req.EventID, req.ServiceID, len(bookings))

	return &Response{
		EventID:         event.ID,
		ExhibitorID:     exhibitor.ID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		IntervalMinutes: exhibitor.IntervalMinutes,
		Slots:           slots,
	}, nil
}
