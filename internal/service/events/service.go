package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/marche-portal/internal/domain"
	eventRepo "github.com/m04kA/marche-portal/internal/infra/storage/event"
	"github.com/m04kA/marche-portal/internal/service/events/models"
	"github.com/m04kA/marche-portal/internal/slotengine"
)

// Service сервис для работы с событиями
type Service struct {
	eventRepo EventRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(eventRepo EventRepository, logger Logger) *Service {
	return &Service{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Create создает событие в статусе DRAFT, организатор - вызывающий пользователь
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: creating event %q by user=%d", req.Title, req.UserID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	event, err := s.eventRepo.Create(ctx, req.ToDomainEvent())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: event id=%d created as draft", event.ID)
	return models.FromDomainEvent(event), nil
}

// Publish открывает событие для экспонентов и бронирований
// Доступно только организатору. Повторная публикация ничего не меняет
func (s *Service) Publish(ctx context.Context, id int64, userID int64) (*models.EventResponse, error) {
	s.logger.Info("Publish: publishing event id=%d by user=%d", id, userID)

	event, err := s.getEvent(ctx, "Publish", id)
	if err != nil {
		return nil, err
	}

	if !event.IsOwnedBy(userID) {
		s.logger.Warn("Publish: user=%d is not the organizer of event id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	if event.IsPublished() {
		return models.FromDomainEvent(event), nil
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, domain.EventStatusPublished); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("Publish: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Publish - repository error: %v", ErrInternal, err)
	}

	event.Status = domain.EventStatusPublished
	s.logger.Info("Publish: event id=%d published", id)
	return models.FromDomainEvent(event), nil
}

// GetByID получает событие по ID
// Черновик виден только организатору
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.EventResponse, error) {
	event, err := s.getEvent(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !event.IsPublished() && !event.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: draft event id=%d requested by user=%d", id, userID)
		return nil, ErrEventNotFound
	}

	return models.FromDomainEvent(event), nil
}

// ListPublished возвращает опубликованные события, ближайшие первыми
func (s *Service) ListPublished(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error) {
	if req.StartFrom != nil && req.StartTo != nil && req.StartTo.Before(*req.StartFrom) {
		return nil, fmt.Errorf("%w: startTo must not be before startFrom", ErrInvalidInput)
	}

	events, err := s.eventRepo.ListPublished(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListPublished: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPublished - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPublished: fetched %d events", len(events))
	return models.FromDomainEventList(events), nil
}

func (s *Service) getEvent(ctx context.Context, op string, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("%s: event id=%d not found", op, id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("%s: repository error for event id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return event, nil
}

func validateCreate(req *models.CreateEventRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: organizer is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}
	if req.EndDate.Sub(req.StartDate) > slotengine.MaxEventDays*24*time.Hour {
		return fmt.Errorf("%w: event must not be longer than %d days", ErrInvalidInput, slotengine.MaxEventDays)
	}
	if req.MaxExhibitors <= 0 || req.MaxExhibitors > domain.MaxExhibitorsLimit {
		return fmt.Errorf("%w: maxExhibitors must be between 1 and %d", ErrInvalidInput, domain.MaxExhibitorsLimit)
	}
	if req.IsOnline && (req.MeetingURL == nil || strings.TrimSpace(*req.MeetingURL) == "") {
		return fmt.Errorf("%w: meetingUrl is required for online events", ErrInvalidInput)
	}
	return nil
}
