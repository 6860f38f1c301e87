package booking

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

const table = "bookings"

var columns = []string{
	"id",
	"user_id",
	"event_id",
	"exhibitor_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"payment_method",
	"total_amount",
	"notes",
	"checkout_session_id",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Пересечение с активным бронированием той же услуги отклоняется EXCLUDE constraint
// и возвращается как ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"event_id",
			"exhibitor_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"payment_method",
			"total_amount",
			"notes",
		).
		Values(
			booking.UserID,
			booking.EventID,
			booking.ExhibitorID,
			booking.ServiceID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.PaymentMethod,
			booking.TotalAmount,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, queryErr("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, "GetByID", builder)
}

// GetByCheckoutSessionID получает бронирование по ID checkout-сессии оплаты
func (r *Repository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"checkout_session_id": sessionID})

	return r.getOne(ctx, "GetByCheckoutSessionID", builder)
}

// List получает бронирования по фильтру, отсортированные по времени начала
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.EventID != nil {
		builder = builder.Where(squirrel.Eq{"event_id": *filter.EventID})
	}
	if filter.ExhibitorID != nil {
		builder = builder.Where(squirrel.Eq{"exhibitor_id": *filter.ExhibitorID})
	}
	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.StartFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"start_time": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.StartTo})
	}
	if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := builder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr("List - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveByService получает все неотмененные бронирования услуги
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка и вставка
// видели одно и то же состояние
func (r *Repository) ListActiveByService(ctx context.Context, serviceID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryErr("ListActiveByService - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Если бронирование уже не в статусе from, возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	if !isValidStatus(to) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, to)
	}

	builder := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if to == domain.StatusCancelled {
		builder = builder.Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	return r.execUpdate(ctx, "UpdateStatus", id, builder)
}

// Cancel отменяет активное бронирование
// Отмененное бронирование сразу перестает занимать слот
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	builder := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": activeStatuses})

	return r.execUpdate(ctx, "Cancel", id, builder)
}

// SetCheckoutSession сохраняет ID checkout-сессии оплаты картой
func (r *Repository) SetCheckoutSession(ctx context.Context, id int64, sessionID string) error {
	builder := psqlbuilder.Update(table).
		Set("checkout_session_id", sessionID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execUpdate(ctx, "SetCheckoutSession", id, builder)
}

func (r *Repository) getOne(ctx context.Context, op string, builder squirrel.SelectBuilder) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// execUpdate выполняет UPDATE и различает "нет строки" и "строка в другом статусе"
func (r *Repository) execUpdate(ctx context.Context, op string, id int64, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return queryErr(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusChanged
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var notes, checkoutSessionID sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.EventID,
		&booking.ExhibitorID,
		&booking.ServiceID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.TotalAmount,
		&notes,
		&checkoutSessionID,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		booking.Notes = &notes.String
	}
	if checkoutSessionID.Valid {
		booking.CheckoutSessionID = &checkoutSessionID.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, queryErr("scanBookings - rows error", err)
	}

	return bookings, nil
}

func isValidStatus(status domain.BookingStatus) bool {
	for _, s := range domain.ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
