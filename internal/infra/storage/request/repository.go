package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	"github.com/m04kA/QA-MatchingService/pkg/dbmetrics"
	"github.com/m04kA/QA-MatchingService/pkg/geokit"
	"github.com/m04kA/QA-MatchingService/pkg/psqlbuilder"
)

// requestColumns полный набор колонок таблицы service_requests
var requestColumns = []string{
	"id",
	"customer_id",
	"provider_id",
	"service_id",
	"status",
	"service_name",
	"latitude",
	"longitude",
	"final_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку в статусе PENDING
func (r *Repository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_requests").
		Columns(
			"customer_id",
			"service_id",
			"status",
			"service_name",
			"latitude",
			"longitude",
		).
		Values(
			req.CustomerID,
			req.ServiceID,
			req.Status,
			req.ServiceName,
			req.Latitude,
			req.Longitude,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает заявку по ID с блокировкой строки (FOR UPDATE).
// Блокировка добавляется только внутри транзакции - вне транзакции FOR UPDATE
// не дает гарантий и не имеет смысла.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("service_requests").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	// Причина остается в цепочке: конфликт сериализации (pq 40001) на
	// заблокированном чтении должен быть виден retry-логике transaction manager
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// FindPendingInBox получает PENDING-заявки не старше since внутри bounding box.
// Это грубая предварительная фильтрация: рамка может включать точки дальше
// радиуса, точная фильтрация по geodesic-расстоянию выполняется в usecase.
func (r *Repository) FindPendingInBox(ctx context.Context, box geokit.BoundingBox, since time.Time) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("service_requests").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.GtOrEq{"created_at": since}).
		Where(squirrel.GtOrEq{"latitude": box.MinLat}).
		Where(squirrel.LtOrEq{"latitude": box.MaxLat}).
		Where(squirrel.GtOrEq{"longitude": box.MinLon}).
		Where(squirrel.LtOrEq{"longitude": box.MaxLon}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingInBox - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingInBox - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// Assign назначает исполнителя на заявку и переводит её в ACCEPTED.
// Условие status = PENDING в WHERE работает как compare-and-swap: даже при
// вызове вне транзакции двойное назначение невозможно. Возвращает момент
// обновления строки, чтобы ответ и уведомление совпадали с состоянием в БД.
func (r *Repository) Assign(ctx context.Context, id, providerID int64) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_requests").
		Set("provider_id", providerID).
		Set("status", domain.StatusAccepted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Assign - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrRequestNotPending
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Assign - execute update: %w", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// UpdateStatus обновляет статус заявки и возвращает момент обновления строки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrRequestNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// GetByCustomer получает заявки, созданные заказчиком, новые первыми
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("service_requests").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetByProvider получает заявки, принятые исполнителем, недавно обновленные первыми
func (r *Repository) GetByProvider(ctx context.Context, providerID int64) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("service_requests").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("updated_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует одну строку в заявку
func scanRequest(row rowScanner) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	var providerID sql.NullInt64
	var finalPrice sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.CustomerID,
		&providerID,
		&req.ServiceID,
		&req.Status,
		&req.ServiceName,
		&req.Latitude,
		&req.Longitude,
		&finalPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if providerID.Valid {
		req.ProviderID = &providerID.Int64
	}
	if finalPrice.Valid {
		req.FinalPrice = &finalPrice.Float64
	}
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// scanRequests сканирует результаты запроса в слайс заявок
func scanRequests(rows *sql.Rows) ([]*domain.ServiceRequest, error) {
	requests := make([]*domain.ServiceRequest, 0)

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %w", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %w", ErrScanRow, err)
	}

	return requests, nil
}
