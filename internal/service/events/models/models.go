package models

import (
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// CreateEventRequest запрос на создание события
type CreateEventRequest struct {
	UserID        int64     `json:"-"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Prefecture    string    `json:"prefecture"`
	EventType     string    `json:"eventType"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	MaxExhibitors int       `json:"maxExhibitors"`
	IsOnline      bool      `json:"isOnline"`
	MeetingURL    *string   `json:"meetingUrl,omitempty"`
}

// ToDomainEvent конвертирует request в domain модель черновика
func (r *CreateEventRequest) ToDomainEvent() *domain.Event {
	return &domain.Event{
		OrganizerID:   r.UserID,
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Prefecture:    r.Prefecture,
		EventType:     r.EventType,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		MaxExhibitors: r.MaxExhibitors,
		IsOnline:      r.IsOnline,
		MeetingURL:    r.MeetingURL,
		Status:        domain.EventStatusDraft,
	}
}

// ListEventsRequest фильтры списка опубликованных событий
type ListEventsRequest struct {
	Prefecture *string
	EventType  *string
	StartFrom  *time.Time
	StartTo    *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListEventsRequest) ToDomainFilter() domain.EventsFilter {
	return domain.EventsFilter{
		Prefecture: r.Prefecture,
		EventType:  r.EventType,
		StartFrom:  r.StartFrom,
		StartTo:    r.StartTo,
	}
}

// EventResponse ответ с данными события
type EventResponse struct {
	ID            int64     `json:"id"`
	OrganizerID   int64     `json:"organizerId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Prefecture    string    `json:"prefecture"`
	EventType     string    `json:"eventType"`
	StartDate     string    `json:"startDate"` // RFC 3339
	EndDate       string    `json:"endDate"`   // RFC 3339
	MaxExhibitors int       `json:"maxExhibitors"`
	IsOnline      bool      `json:"isOnline"`
	MeetingURL    *string   `json:"meetingUrl,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	return &EventResponse{
		ID:            e.ID,
		OrganizerID:   e.OrganizerID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		Prefecture:    e.Prefecture,
		EventType:     e.EventType,
		StartDate:     e.StartDate.Format(time.RFC3339),
		EndDate:       e.EndDate.Format(time.RFC3339),
		MaxExhibitors: e.MaxExhibitors,
		IsOnline:      e.IsOnline,
		MeetingURL:    e.MeetingURL,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список domain моделей в DTO
func FromDomainEventList(events []*domain.Event) *EventListResponse {
	resp := &EventListResponse{Events: make([]EventResponse, 0, len(events))}
	for _, e := range events {
		if er := FromDomainEvent(e); er != nil {
			resp.Events = append(resp.Events, *er)
		}
	}
	return resp
}
