package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/pkg/dbmetrics"
	"github.com/m04kA/marche-portal/pkg/psqlbuilder"
)

const table = "events"

var columns = []string{
	"id",
	"organizer_id",
	"title",
	"description",
	"location",
	"prefecture",
	"event_type",
	"start_date",
	"end_date",
	"max_exhibitors",
	"is_online",
	"meeting_url",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий событий (марше)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает событие
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"organizer_id",
			"title",
			"description",
			"location",
			"prefecture",
			"event_type",
			"start_date",
			"end_date",
			"max_exhibitors",
			"is_online",
			"meeting_url",
			"status",
		).
		Values(
			event.OrganizerID,
			event.Title,
			event.Description,
			event.Location,
			event.Prefecture,
			event.EventType,
			event.StartDate,
			event.EndDate,
			event.MaxExhibitors,
			event.IsOnline,
			event.MeetingURL,
			event.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return event, nil
}

// GetByID получает событие по ID
// Внутри транзакции строка блокируется: регистрации экспонентов на событие идут по очереди
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	event, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return event, nil
}

// ListPublished возвращает опубликованные события по фильтру, ближайшие первыми
func (r *Repository) ListPublished(ctx context.Context, filter domain.EventsFilter) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(domain.EventStatusPublished)})

	if filter.Prefecture != nil {
		builder = builder.Where(squirrel.Eq{"prefecture": *filter.Prefecture})
	}
	if filter.EventType != nil {
		builder = builder.Where(squirrel.Eq{"event_type": *filter.EventType})
	}
	if filter.StartFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_date": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"start_date": *filter.StartTo})
	}

	query, args, err := builder.OrderBy("start_date ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublished - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPublished - scan row: %v", ErrScanRow, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPublished - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// UpdateStatus меняет статус публикации события
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var event domain.Event
	var meetingURL sql.NullString

	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Prefecture,
		&event.EventType,
		&event.StartDate,
		&event.EndDate,
		&event.MaxExhibitors,
		&event.IsOnline,
		&meetingURL,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if meetingURL.Valid {
		event.MeetingURL = &meetingURL.String
	}

	return &event, nil
}
