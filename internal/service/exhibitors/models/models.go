package models

import (
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию экспонента на событии
type RegisterRequest struct {
	UserID          int64   `json:"-"`
	EventID         int64   `json:"-"`
	Name            string  `json:"name"`
	BusinessName    *string `json:"businessName,omitempty"`
	Introduction    string  `json:"introduction"`
	Category        string  `json:"category"`
	IntervalMinutes int     `json:"intervalMinutes"`
}

// ToDomainExhibitor конвертирует request в domain модель
func (r *RegisterRequest) ToDomainExhibitor() *domain.Exhibitor {
	return &domain.Exhibitor{
		EventID:         r.EventID,
		UserID:          r.UserID,
		Name:            r.Name,
		BusinessName:    r.BusinessName,
		Introduction:    r.Introduction,
		Category:        r.Category,
		IntervalMinutes: r.IntervalMinutes,
	}
}

// UpdateSettingsRequest запрос на изменение настроек экспонента
type UpdateSettingsRequest struct {
	UserID          int64 `json:"-"`
	IntervalMinutes *int  `json:"intervalMinutes"`
}

// CreateServiceRequest запрос на добавление услуги
type CreateServiceRequest struct {
	UserID          int64   `json:"-"`
	ExhibitorID     int64   `json:"-"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           int64   `json:"price"`
}

// ToDomainService конвертирует request в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		ExhibitorID:     r.ExhibitorID,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	ExhibitorID     int64     `json:"exhibitorId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           int64     `json:"price"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ExhibitorResponse ответ с данными экспонента
type ExhibitorResponse struct {
	ID              int64             `json:"id"`
	EventID         int64             `json:"eventId"`
	UserID          int64             `json:"userId"`
	Name            string            `json:"name"`
	BusinessName    *string           `json:"businessName,omitempty"`
	Introduction    string            `json:"introduction"`
	Category        string            `json:"category"`
	IntervalMinutes int               `json:"intervalMinutes"`
	Services        []ServiceResponse `json:"services"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		ExhibitorID:     s.ExhibitorID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainExhibitor конвертирует domain модель экспонента и его услуги в DTO
func FromDomainExhibitor(e *domain.Exhibitor, services []*domain.Service) *ExhibitorResponse {
	if e == nil {
		return nil
	}

	resp := &ExhibitorResponse{
		ID:              e.ID,
		EventID:         e.EventID,
		UserID:          e.UserID,
		Name:            e.Name,
		BusinessName:    e.BusinessName,
		Introduction:    e.Introduction,
		Category:        e.Category,
		IntervalMinutes: e.IntervalMinutes,
		Services:        make([]ServiceResponse, 0, len(services)),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	for _, s := range services {
		if sr := FromDomainService(s); sr != nil {
			resp.Services = append(resp.Services, *sr)
		}
	}

	return resp
}
