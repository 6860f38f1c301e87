package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
	bookingRepo "github.com/m04kA/marche-portal/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/marche-portal/internal/infra/storage/event"
	exhibitorRepo "github.com/m04kA/marche-portal/internal/infra/storage/exhibitor"
	"github.com/m04kA/marche-portal/internal/integrations/payment"
	"github.com/m04kA/marche-portal/internal/integrations/sheets"
	"github.com/m04kA/marche-portal/internal/slotengine"
	"github.com/m04kA/marche-portal/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	eventRepo     EventRepository
	exhibitorRepo ExhibitorRepository
	bookingRepo   BookingRepository
	payment       PaymentClient
	exporter      Exporter
	metrics       Metrics
	txManager     TransactionManager
	rules         slotengine.Rules
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
// payment, exporter и metrics могут быть nil: тогда оплата картой недоступна,
// выгрузка и метрики не пишутся
func NewUseCase(
	eventRepo EventRepository,
	exhibitorRepo ExhibitorRepository,
	bookingRepo BookingRepository,
	payment PaymentClient,
	exporter Exporter,
	metrics Metrics,
	txManager TransactionManager,
	rules slotengine.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:     eventRepo,
		exhibitorRepo: exhibitorRepo,
		bookingRepo:   bookingRepo,
		payment:       payment,
		exporter:      exporter,
		metrics:       metrics,
		txManager:     txManager,
		rules:         rules,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции
// по свежему, заблокированному списку бронирований услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, event=%d, exhibitor=%d, service=%d, start=%s, payment=%s",
		req.UserID, req.EventID, req.ExhibitorID, req.ServiceID, req.StartTime.Format(time.RFC3339), req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if req.PaymentMethod == domain.PaymentCreditCard && uc.payment == nil {
		uc.logger.Warn("CreateBooking: card payment requested but not configured")
		return nil, ErrPaymentUnavailable
	}

	// 2. Получаем услугу, экспонента и событие
	service, exhibitor, err := uc.loadServiceAndExhibitor(ctx, req)
	if err != nil {
		return nil, err
	}

	event, err := uc.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("CreateBooking: event id=%d not found", req.EventID)
			return nil, ErrEventNotFound
		}
		uc.logger.Error("CreateBooking: failed to get event id=%d: %v", req.EventID, err)
		return nil, fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
	}

	if !event.IsPublished() {
		uc.logger.Warn("CreateBooking: event id=%d is not published", event.ID)
		return nil, ErrEventNotPublished
	}

	if req.PaymentMethod == domain.PaymentCreditCard && service.Price <= 0 {
		uc.logger.Warn("CreateBooking: card payment for free service id=%d", service.ID)
		return nil, fmt.Errorf("%w: service is free, use %s", ErrInvalidInput, domain.PaymentOnSite)
	}

	// 3. Конец слота определяется длительностью услуги
	endTime := req.StartTime.Add(service.Duration())
	if req.EndTime != nil && !req.EndTime.Equal(endTime) {
		uc.logger.Warn("CreateBooking: endTime %s does not match service duration %dm",
			req.EndTime.Format(time.RFC3339), service.DurationMinutes)
		return nil, fmt.Errorf("%w: endTime must equal startTime + %d minutes", ErrInvalidInput, service.DurationMinutes)
	}

	var created *domain.Booking

	// 4. Проверяем слот и сохраняем бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем услугу: конкурентные бронирования одной услуги идут по очереди
		lockedService, err := uc.exhibitorRepo.GetServiceByID(txCtx, service.ID)
		if err != nil {
			return uc.txReadErr("lock service", service.ID, err)
		}

		// 4.2. Перечитываем экспонента: интервал мог измениться
		currentExhibitor, err := uc.exhibitorRepo.GetByID(txCtx, exhibitor.ID)
		if err != nil {
			return uc.txReadErr("get exhibitor", exhibitor.ID, err)
		}

		// 4.3. Слот должен быть одним из тех, что отдает список доступных слотов
		if err := slotengine.CheckSlotPlacement(uc.rules, *event, *lockedService, req.StartTime); err != nil {
			uc.logger.Warn("CreateBooking: slot placement rejected: %v", err)
			return mapEngineError(err)
		}

		// 4.4. Свежий список бронирований услуги (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListActiveByService(txCtx, lockedService.ID)
		if err != nil {
			return uc.txReadErr("get bookings of service", lockedService.ID, err)
		}

		// 4.5. Проверяем пересечения и время
		now := uc.timeProvider.Now()
		if err := slotengine.ValidateBookingRequest(lockedService.ID, req.StartTime, endTime, bookings, now,
			currentExhibitor.Buffer()); err != nil {
			uc.logger.Warn("CreateBooking: booking rejected: %v", err)
			return mapEngineError(err)
		}

		// 4.6. Сохраняем бронирование
		booking := &domain.Booking{
			UserID:        req.UserID,
			EventID:       event.ID,
			ExhibitorID:   currentExhibitor.ID,
			ServiceID:     lockedService.ID,
			StartTime:     req.StartTime,
			EndTime:       endTime,
			Status:        req.PaymentMethod.InitialStatus(),
			PaymentMethod: req.PaymentMethod,
			TotalAmount:   lockedService.Price,
			Notes:         req.Notes,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if bookingRepo.IsSlotConflict(err) {
				return fmt.Errorf("%w: %v", ErrBookingConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Ошибка сериализации при коммите означает, что конкурент занял слот первым
		if !errors.Is(err, ErrBookingConflict) && bookingRepo.IsSlotConflict(err) {
			err = fmt.Errorf("%w: %v", ErrBookingConflict, err)
		}
		if errors.Is(err, ErrBookingConflict) {
			uc.logger.Warn("CreateBooking: conflict for service id=%d at %s", service.ID, req.StartTime.Format(time.RFC3339))
			if uc.metrics != nil {
				uc.metrics.IncBookingConflict()
			}
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, status=%s", created.ID, created.Status)

	resp := &Response{Booking: created}

	// 5. Оплата картой: создаем checkout-сессию
	if created.PaymentMethod == domain.PaymentCreditCard {
		checkoutURL, err := uc.startCheckout(ctx, created, service)
		if err != nil {
			return nil, err
		}
		resp.CheckoutURL = ptr.Ptr(checkoutURL)
	}

	// 6. Фоновая выгрузка в таблицу
	uc.export(created)

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(string(created.PaymentMethod))
	}

	return resp, nil
}

func (uc *UseCase) loadServiceAndExhibitor(ctx context.Context, req *Request) (*domain.Service, *domain.Exhibitor, error) {
	service, err := uc.exhibitorRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	exhibitor, err := uc.exhibitorRepo.GetByID(ctx, req.ExhibitorID)
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrExhibitorNotFound) {
			uc.logger.Warn("CreateBooking: exhibitor id=%d not found", req.ExhibitorID)
			return nil, nil, ErrExhibitorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get exhibitor id=%d: %v", req.ExhibitorID, err)
		return nil, nil, fmt.Errorf("%w: failed to get exhibitor: %v", ErrInternal, err)
	}

	if err := validateOwnership(req, exhibitor, service); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, nil, err
	}

	return service, exhibitor, nil
}

// txReadErr переводит ошибку чтения внутри транзакции в ошибку use case
// Сбой сериализации или взаимоблокировка означают, что конкурент занял слот первым
func (uc *UseCase) txReadErr(op string, id int64, err error) error {
	switch {
	case errors.Is(err, exhibitorRepo.ErrServiceNotFound):
		uc.logger.Warn("CreateBooking: %s id=%d: service not found", op, id)
		return ErrServiceNotFound
	case errors.Is(err, exhibitorRepo.ErrExhibitorNotFound):
		uc.logger.Warn("CreateBooking: %s id=%d: exhibitor not found", op, id)
		return ErrExhibitorNotFound
	case bookingRepo.IsSlotConflict(err), errors.Is(err, exhibitorRepo.ErrConcurrentUpdate):
		return fmt.Errorf("%w: %s: %v", ErrBookingConflict, op, err)
	}

	uc.logger.Error("CreateBooking: failed to %s id=%d: %v", op, id, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrInternal, op, err)
}

// startCheckout создает checkout-сессию; если сессию создать не удалось, отменяет бронирование, освобождая слот
func (uc *UseCase) startCheckout(ctx context.Context, booking *domain.Booking, service *domain.Service) (string, error) {
	session, err := uc.payment.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		BookingID:   booking.ID,
		ServiceName: service.Name,
		Amount:      booking.TotalAmount,
		StartTime:   booking.StartTime,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: checkout failed for booking id=%d: %v", booking.ID, err)
		if cancelErr := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusPending, domain.StatusCancelled); cancelErr != nil {
			uc.logger.Error("CreateBooking: failed to cancel booking id=%d after checkout error: %v", booking.ID, cancelErr)
		}
		return "", fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	// Сессия уже открыта: вебхук найдет бронирование по bookingId из metadata
	if err := uc.bookingRepo.SetCheckoutSession(ctx, booking.ID, session.ID); err != nil {
		uc.logger.Error("CreateBooking: failed to save checkout session %s for booking id=%d: %v", session.ID, booking.ID, err)
		return session.URL, nil
	}
	booking.CheckoutSessionID = ptr.Ptr(session.ID)

	return session.URL, nil
}

func (uc *UseCase) export(booking *domain.Booking) {
	if uc.exporter == nil {
		return
	}

	err := uc.exporter.ExportBooking(sheets.BookingRow{
		BookingID:     booking.ID,
		EventID:       booking.EventID,
		ExhibitorID:   booking.ExhibitorID,
		ServiceID:     booking.ServiceID,
		UserID:        booking.UserID,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		Status:        string(booking.Status),
		PaymentMethod: string(booking.PaymentMethod),
		TotalAmount:   booking.TotalAmount,
		CreatedAt:     booking.CreatedAt,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: booking id=%d not queued for export: %v", booking.ID, err)
	}
}
