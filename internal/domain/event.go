package domain

import "time"

// EventStatus represents the publication state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
)

// Event represents a marche organised by a user
type Event struct {
	ID            int64
	OrganizerID   int64
	Title         string
	Description   string
	Location      string
	Prefecture    string
	EventType     string
	StartDate     time.Time // start of the window, inclusive
	EndDate       time.Time // end of the window, exclusive
	MaxExhibitors int
	IsOnline      bool
	MeetingURL    *string
	Status        EventStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPublished returns true if the event accepts exhibitors and bookings
func (e *Event) IsPublished() bool {
	return e.Status == EventStatusPublished
}

// HasValidWindow returns true if the event window is non-empty
func (e *Event) HasValidWindow() bool {
	return e.EndDate.After(e.StartDate)
}

// IsOwnedBy returns true if userID organises the event
func (e *Event) IsOwnedBy(userID int64) bool {
	return e.OrganizerID == userID
}

// EventsFilter фильтр для списка опубликованных событий
type EventsFilter struct {
	Prefecture *string    // Префектура (опционально)
	EventType  *string    // Тип события (опционально)
	StartFrom  *time.Time // Начало события не раньше (опционально)
	StartTo    *time.Time // Начало события не позже (опционально)
}
