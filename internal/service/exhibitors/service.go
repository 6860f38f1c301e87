package exhibitors

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/marche-portal/internal/domain"
	eventRepo "github.com/m04kA/marche-portal/internal/infra/storage/event"
	exhibitorRepo "github.com/m04kA/marche-portal/internal/infra/storage/exhibitor"
	"github.com/m04kA/marche-portal/internal/integrations/sheets"
	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
	"github.com/m04kA/marche-portal/pkg/pgerr"
)

// Service сервис для работы с экспонентами и их услугами
type Service struct {
	eventRepo     EventRepository
	exhibitorRepo ExhibitorRepository
	exporter      Exporter
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса экспонентов
// exporter может быть nil, тогда выгрузка в таблицу отключена
func NewService(
	eventRepo EventRepository,
	exhibitorRepo ExhibitorRepository,
	exporter Exporter,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:     eventRepo,
		exhibitorRepo: exhibitorRepo,
		exporter:      exporter,
		txManager:     txManager,
		logger:        logger,
	}
}

// Register регистрирует пользователя экспонентом на опубликованном событии
// Проверка лимита maxExhibitors и вставка выполняются в одной SERIALIZABLE транзакции
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.ExhibitorResponse, error) {
	s.logger.Info("Register: user=%d registers for event=%d", req.UserID, req.EventID)

	// 1. Валидируем входные данные
	if err := validateName("name", req.Name); err != nil {
		return nil, err
	}
	if err := validateInterval(req.IntervalMinutes); err != nil {
		return nil, err
	}

	// 2. Проверяем событие, лимит и создаем регистрацию
	var created *domain.Exhibitor
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		event, err := s.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("%w: failed to get event: %v", ErrInternal, err)
		}
		if !event.IsPublished() {
			return ErrEventNotPublished
		}

		_, err = s.exhibitorRepo.GetByEventAndUser(txCtx, req.EventID, req.UserID)
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, exhibitorRepo.ErrExhibitorNotFound) {
			return fmt.Errorf("%w: failed to check registration: %v", ErrInternal, err)
		}

		count, err := s.exhibitorRepo.CountByEvent(txCtx, req.EventID)
		if err != nil {
			return fmt.Errorf("%w: failed to count exhibitors: %v", ErrInternal, err)
		}
		if count >= event.MaxExhibitors {
			return fmt.Errorf("%w: %d of %d places taken", ErrEventFull, count, event.MaxExhibitors)
		}

		created, err = s.exhibitorRepo.Create(txCtx, req.ToDomainExhibitor())
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, s.registerErr(req, err)
	}

	// 3. Выгружаем регистрацию в таблицу
	s.export(created)

	s.logger.Info("Register: exhibitor id=%d registered for event=%d", created.ID, created.EventID)
	return models.FromDomainExhibitor(created, nil), nil
}

// GetByID получает экспонента вместе с его услугами
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ExhibitorResponse, error) {
	s.logger.Info("GetByID: fetching exhibitor id=%d", id)

	exhibitor, err := s.getExhibitor(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	services, err := s.exhibitorRepo.ListServices(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list services of exhibitor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExhibitor(exhibitor, services), nil
}

// UpdateSettings меняет интервал между услугами экспонента
// Доступно только владельцу. Новый интервал применяется к следующим бронированиям
func (s *Service) UpdateSettings(ctx context.Context, id int64, req *models.UpdateSettingsRequest) (*models.ExhibitorResponse, error) {
	s.logger.Info("UpdateSettings: updating exhibitor id=%d by user=%d", id, req.UserID)

	if req.IntervalMinutes == nil {
		return nil, fmt.Errorf("%w: intervalMinutes is required", ErrInvalidInput)
	}
	if err := validateInterval(*req.IntervalMinutes); err != nil {
		return nil, err
	}

	exhibitor, err := s.getExhibitor(ctx, "UpdateSettings", id)
	if err != nil {
		return nil, err
	}
	if !exhibitor.IsOwnedBy(req.UserID) {
		s.logger.Warn("UpdateSettings: user=%d does not own exhibitor id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	updated, err := s.exhibitorRepo.UpdateInterval(ctx, id, *req.IntervalMinutes)
	if err != nil {
		switch {
		case errors.Is(err, exhibitorRepo.ErrExhibitorNotFound):
			return nil, ErrExhibitorNotFound
		case errors.Is(err, exhibitorRepo.ErrConcurrentUpdate):
			return nil, ErrConcurrentUpdate
		}
		s.logger.Error("UpdateSettings: repository error for exhibitor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	services, err := s.exhibitorRepo.ListServices(ctx, id)
	if err != nil {
		s.logger.Error("UpdateSettings: failed to list services of exhibitor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: exhibitor id=%d interval %d -> %d minutes",
		id, exhibitor.IntervalMinutes, updated.IntervalMinutes)
	return models.FromDomainExhibitor(updated, services), nil
}

// AddService добавляет услугу экспонента
// Доступно только владельцу
func (s *Service) AddService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("AddService: adding service to exhibitor id=%d by user=%d", req.ExhibitorID, req.UserID)

	if err := validateName("name", req.Name); err != nil {
		return nil, err
	}
	if err := validateService(req.DurationMinutes, req.Price); err != nil {
		return nil, err
	}

	exhibitor, err := s.getExhibitor(ctx, "AddService", req.ExhibitorID)
	if err != nil {
		return nil, err
	}
	if !exhibitor.IsOwnedBy(req.UserID) {
		s.logger.Warn("AddService: user=%d does not own exhibitor id=%d", req.UserID, req.ExhibitorID)
		return nil, ErrAccessDenied
	}

	service, err := s.exhibitorRepo.CreateService(ctx, req.ToDomainService())
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrExhibitorNotFound) {
			return nil, ErrExhibitorNotFound
		}
		s.logger.Error("AddService: repository error for exhibitor id=%d: %v", req.ExhibitorID, err)
		return nil, fmt.Errorf("%w: AddService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddService: service id=%d (%d min, %d JPY) added to exhibitor id=%d",
		service.ID, service.DurationMinutes, service.Price, req.ExhibitorID)
	return models.FromDomainService(service), nil
}

// Вспомогательные методы

func (s *Service) getExhibitor(ctx context.Context, op string, id int64) (*domain.Exhibitor, error) {
	exhibitor, err := s.exhibitorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, exhibitorRepo.ErrExhibitorNotFound) {
			s.logger.Warn("%s: exhibitor id=%d not found", op, id)
			return nil, ErrExhibitorNotFound
		}
		s.logger.Error("%s: repository error for exhibitor id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return exhibitor, nil
}

func (s *Service) registerErr(req *models.RegisterRequest, err error) error {
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrEventNotPublished), errors.Is(err, ErrEventFull):
		s.logger.Warn("Register: user=%d rejected for event=%d: %v", req.UserID, req.EventID, err)
		return err
	case errors.Is(err, ErrAlreadyRegistered), errors.Is(err, exhibitorRepo.ErrAlreadyRegistered):
		s.logger.Warn("Register: user=%d already registered for event=%d", req.UserID, req.EventID)
		return ErrAlreadyRegistered
	case errors.Is(err, exhibitorRepo.ErrConcurrentUpdate), pgerr.IsSerializationFailure(err):
		s.logger.Warn("Register: concurrent registration for event=%d: %v", req.EventID, err)
		return ErrConcurrentUpdate
	case errors.Is(err, ErrInternal):
		s.logger.Error("Register: %v", err)
		return err
	}
	s.logger.Error("Register: repository error for event=%d: %v", req.EventID, err)
	return fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
}

func (s *Service) export(exhibitor *domain.Exhibitor) {
	if s.exporter == nil {
		return
	}

	businessName := ""
	if exhibitor.BusinessName != nil {
		businessName = *exhibitor.BusinessName
	}

	err := s.exporter.ExportExhibitor(sheets.ExhibitorRow{
		ExhibitorID:  exhibitor.ID,
		EventID:      exhibitor.EventID,
		UserID:       exhibitor.UserID,
		Name:         exhibitor.Name,
		BusinessName: businessName,
		Category:     exhibitor.Category,
		CreatedAt:    exhibitor.CreatedAt,
	})
	if err != nil {
		s.logger.Warn("Register: failed to queue sheet export for exhibitor id=%d: %v", exhibitor.ID, err)
	}
}
