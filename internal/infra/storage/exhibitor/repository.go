package exhibitor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/pkg/dbmetrics"
	"github.com/m04kA/marche-portal/pkg/pgerr"
	"github.com/m04kA/marche-portal/pkg/psqlbuilder"
)

const (
	exhibitorsTable = "exhibitors"
	servicesTable   = "services"
)

var exhibitorColumns = []string{
	"id",
	"event_id",
	"user_id",
	"name",
	"business_name",
	"introduction",
	"category",
	"interval_minutes",
	"created_at",
	"updated_at",
}

var serviceColumns = []string{
	"id",
	"exhibitor_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий экспонентов и их услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория экспонентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует экспонента на событии
// Один пользователь может зарегистрироваться на событие только один раз (UNIQUE event_id, user_id)
func (r *Repository) Create(ctx context.Context, exhibitor *domain.Exhibitor) (*domain.Exhibitor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(exhibitorsTable).
		Columns("event_id", "user_id", "name", "business_name", "introduction", "category", "interval_minutes").
		Values(
			exhibitor.EventID,
			exhibitor.UserID,
			exhibitor.Name,
			exhibitor.BusinessName,
			exhibitor.Introduction,
			exhibitor.Category,
			exhibitor.IntervalMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&exhibitor.ID, &exhibitor.CreatedAt, &exhibitor.UpdatedAt)
	if err != nil {
		return nil, execErr("Create - execute insert", err)
	}

	return exhibitor, nil
}

// GetByID получает экспонента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Exhibitor, error) {
	return r.getExhibitor(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEventAndUser получает регистрацию пользователя на событии
func (r *Repository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Exhibitor, error) {
	return r.getExhibitor(ctx, "GetByEventAndUser", squirrel.Eq{"event_id": eventID, "user_id": userID})
}

// CountByEvent возвращает количество экспонентов события
func (r *Repository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(exhibitorsTable).
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByEvent - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, execErr("CountByEvent - scan count", err)
	}

	return count, nil
}

// ListByEvent возвращает экспонентов события в порядке регистрации
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Exhibitor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exhibitorColumns...).
		From(exhibitorsTable).
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execErr("ListByEvent - execute query", err)
	}
	defer rows.Close()

	exhibitors := make([]*domain.Exhibitor, 0)
	for rows.Next() {
		exhibitor, err := scanExhibitor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEvent - scan row: %v", ErrScanRow, err)
		}
		exhibitors = append(exhibitors, exhibitor)
	}
	if err := rows.Err(); err != nil {
		return nil, execErr("ListByEvent - rows error", err)
	}

	return exhibitors, nil
}

// UpdateInterval меняет интервал между услугами экспонента
func (r *Repository) UpdateInterval(ctx context.Context, id int64, intervalMinutes int) (*domain.Exhibitor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(exhibitorsTable).
		Set("interval_minutes", intervalMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(exhibitorColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	exhibitor, err := scanExhibitor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExhibitorNotFound
	}
	if err != nil {
		return nil, execErr("UpdateInterval - execute update", err)
	}

	return exhibitor, nil
}

// CreateService добавляет услугу экспонента
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(servicesTable).
		Columns("exhibitor_id", "name", "description", "duration_minutes", "price").
		Values(service.ExhibitorID, service.Name, service.Description, service.DurationMinutes, service.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, ErrExhibitorNotFound
		}
		return nil, execErr("CreateService - execute insert", err)
	}

	return service, nil
}

// GetServiceByID получает услугу по ID
// Внутри транзакции строка услуги блокируется (FOR UPDATE): так создание бронирований
// одной услуги выполняется строго по очереди
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(serviceColumns...).
		From(servicesTable).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, execErr("GetServiceByID - scan service", err)
	}

	return service, nil
}

// ListServices возвращает услуги экспонента
func (r *Repository) ListServices(ctx context.Context, exhibitorID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From(servicesTable).
		Where(squirrel.Eq{"exhibitor_id": exhibitorID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execErr("ListServices - execute query", err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, execErr("ListServices - rows error", err)
	}

	return services, nil
}

func (r *Repository) getExhibitor(ctx context.Context, op string, where squirrel.Eq) (*domain.Exhibitor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(exhibitorColumns...).
		From(exhibitorsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	exhibitor, err := scanExhibitor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExhibitorNotFound
	}
	if err != nil {
		return nil, execErr(op+" - scan exhibitor", err)
	}

	return exhibitor, nil
}

func execErr(op string, err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrAlreadyRegistered, op, err)
	case pgerr.IsSerializationFailure(err):
		return fmt.Errorf("%w: %s: %v", ErrConcurrentUpdate, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExhibitor(row rowScanner) (*domain.Exhibitor, error) {
	var exhibitor domain.Exhibitor
	var businessName sql.NullString

	err := row.Scan(
		&exhibitor.ID,
		&exhibitor.EventID,
		&exhibitor.UserID,
		&exhibitor.Name,
		&businessName,
		&exhibitor.Introduction,
		&exhibitor.Category,
		&exhibitor.IntervalMinutes,
		&exhibitor.CreatedAt,
		&exhibitor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if businessName.Valid {
		exhibitor.BusinessName = &businessName.String
	}

	return &exhibitor, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var description sql.NullString

	err := row.Scan(
		&service.ID,
		&service.ExhibitorID,
		&service.Name,
		&description,
		&service.DurationMinutes,
		&service.Price,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		service.Description = &description.String
	}

	return &service, nil
}
