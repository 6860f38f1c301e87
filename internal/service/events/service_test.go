package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/marche-portal/internal/domain"
	eventRepo "github.com/m04kA/marche-portal/internal/infra/storage/event"
	"github.com/m04kA/marche-portal/internal/service/events/models"
	"github.com/m04kA/marche-portal/pkg/logger"
	"github.com/m04kA/marche-portal/pkg/ptr"
)

const organizerID = int64(10)

type fakeEvents struct {
	events    map[int64]*domain.Event
	filter    domain.EventsFilter
	nextID    int64
	createErr error
	updates   int
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: map[int64]*domain.Event{}}
}

func (f *fakeEvents) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	e.ID = f.nextID
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEvents) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEvents) ListPublished(_ context.Context, filter domain.EventsFilter) ([]*domain.Event, error) {
	f.filter = filter
	result := make([]*domain.Event, 0)
	for _, e := range f.events {
		if e.IsPublished() {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeEvents) UpdateStatus(_ context.Context, id int64, status domain.EventStatus) error {
	f.updates++
	e, ok := f.events[id]
	if !ok {
		return eventRepo.ErrEventNotFound
	}
	e.Status = status
	return nil
}

func validCreate() *models.CreateEventRequest {
	start := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)
	return &models.CreateEventRequest{
		UserID:        organizerID,
		Title:         "Kamakura Summer Marche",
		Prefecture:    "Kanagawa",
		EventType:     "craft",
		StartDate:     start,
		EndDate:       start.Add(48 * time.Hour),
		MaxExhibitors: 40,
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeEvents()
	svc := NewService(repo, logger.NewNop())

	resp, err := svc.Create(context.Background(), validCreate())

	require.NoError(t, err)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, organizerID, resp.OrganizerID)
	assert.Equal(t, "2025-07-05T00:00:00Z", resp.StartDate)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateEventRequest)
	}{
		{"no organizer", func(r *models.CreateEventRequest) { r.UserID = 0 }},
		{"blank title", func(r *models.CreateEventRequest) { r.Title = "   " }},
		{"empty window", func(r *models.CreateEventRequest) { r.EndDate = r.StartDate }},
		{"inverted window", func(r *models.CreateEventRequest) { r.EndDate = r.StartDate.Add(-time.Hour) }},
		{"too long", func(r *models.CreateEventRequest) { r.EndDate = r.StartDate.Add(400 * 24 * time.Hour) }},
		{"no places", func(r *models.CreateEventRequest) { r.MaxExhibitors = 0 }},
		{"too many places", func(r *models.CreateEventRequest) { r.MaxExhibitors = domain.MaxExhibitorsLimit + 1 }},
		{"online without url", func(r *models.CreateEventRequest) { r.IsOnline = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeEvents(), logger.NewNop())
			req := validCreate()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		repo := newFakeEvents()
		repo.createErr = errors.New("disk full")
		_, err := NewService(repo, logger.NewNop()).Create(context.Background(), validCreate())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestPublish(t *testing.T) {
	repo := newFakeEvents()
	svc := NewService(repo, logger.NewNop())
	created, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), created.ID, organizerID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Publish(context.Background(), created.ID, organizerID)
	require.NoError(t, err)
	assert.Equal(t, "PUBLISHED", resp.Status)

	// Повторная публикация не обращается к хранилищу
	_, err = svc.Publish(context.Background(), created.ID, organizerID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)

	_, err = svc.Publish(context.Background(), 999, organizerID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetByID_DraftVisibleToOrganizerOnly(t *testing.T) {
	svc := NewService(newFakeEvents(), logger.NewNop())
	created, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID, organizerID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID, 0)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListPublished(t *testing.T) {
	repo := newFakeEvents()
	svc := NewService(repo, logger.NewNop())
	draft, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	published, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	_, err = svc.Publish(context.Background(), published.ID, organizerID)
	require.NoError(t, err)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.ListPublished(context.Background(), &models.ListEventsRequest{
		Prefecture: ptr.Ptr("Kanagawa"),
		StartFrom:  &from,
	})

	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, published.ID, resp.Events[0].ID)
	assert.NotEqual(t, draft.ID, resp.Events[0].ID)
	assert.Equal(t, "Kanagawa", *repo.filter.Prefecture)

	to := from.Add(-time.Hour)
	_, err = svc.ListPublished(context.Background(), &models.ListEventsRequest{StartFrom: &from, StartTo: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
