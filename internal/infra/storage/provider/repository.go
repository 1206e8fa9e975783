package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	"github.com/m04kA/QA-MatchingService/pkg/dbmetrics"
	"github.com/m04kA/QA-MatchingService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения профилей исполнителей.
// Профили принадлежат внешнему сервису пользователей; здесь - read model
// плюс сквозная запись координат из tracking endpoint.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает снимок профиля исполнителя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.ProviderProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"user_id",
		"is_verified",
		"is_available",
		"latitude",
		"longitude",
		"service_radius_km",
		"updated_at",
	).
		From("provider_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.ProviderProfile
	var lat, lon sql.NullFloat64
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.UserID,
		&profile.IsVerified,
		&profile.IsAvailable,
		&lat,
		&lon,
		&profile.ServiceRadiusKM,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan profile: %w", ErrScanRow, err)
	}

	if lat.Valid {
		profile.Latitude = &lat.Float64
	}
	if lon.Valid {
		profile.Longitude = &lon.Float64
	}
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

// UpdateLocation сохраняет новую позицию исполнителя
func (r *Repository) UpdateLocation(ctx context.Context, userID int64, lat, lon float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("provider_profiles").
		Set("latitude", lat).
		Set("longitude", lon).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLocation - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}
