package sessiontype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с типами занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип занятия
func (r *Repository) Create(ctx context.Context, sessionType *domain.SessionType) (*domain.SessionType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("session_types").
		Columns(
			"tenant_id",
			"name",
			"description",
			"min_participants",
			"max_participants",
			"price_per_person",
			"duration_minutes",
			"active",
		).
		Values(
			sessionType.TenantID,
			sessionType.Name,
			sessionType.Description,
			sessionType.MinParticipants,
			sessionType.MaxParticipants,
			sessionType.PricePerPerson,
			sessionType.DurationMinutes,
			sessionType.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sessionType.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sessionType.CreatedAt = createdAt.Time
	sessionType.UpdatedAt = updatedAt.Time

	return sessionType, nil
}

// GetByID получает тип занятия по ID в рамках тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.SessionType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"description",
		"min_participants",
		"max_participants",
		"price_per_person",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("session_types").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	sessionType, err := r.scanType(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session type: %v", ErrScanRow, err)
	}

	return sessionType, nil
}

// List получает типы занятий тенанта
// activeOnly = true исключает деактивированные типы
func (r *Repository) List(ctx context.Context, tenantID int64, activeOnly bool) ([]*domain.SessionType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"description",
		"min_participants",
		"max_participants",
		"price_per_person",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("session_types").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.SessionType, 0)
	for rows.Next() {
		sessionType, err := r.scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		types = append(types, sessionType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}

// Update обновляет тип занятия
// Существующие занятия этого типа не затрагиваются
func (r *Repository) Update(ctx context.Context, sessionType *domain.SessionType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("session_types").
		Set("name", sessionType.Name).
		Set("description", sessionType.Description).
		Set("min_participants", sessionType.MinParticipants).
		Set("max_participants", sessionType.MaxParticipants).
		Set("price_per_person", sessionType.PricePerPerson).
		Set("duration_minutes", sessionType.DurationMinutes).
		Set("active", sessionType.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sessionType.ID, "tenant_id": sessionType.TenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTypeNotFound
	}

	return nil
}

// Delete удаляет тип занятия
// Проверка на существующие занятия этого типа выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("session_types").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTypeNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanType сканирует строку результата в доменную модель
func (r *Repository) scanType(row rowScanner) (*domain.SessionType, error) {
	var sessionType domain.SessionType
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sessionType.ID,
		&sessionType.TenantID,
		&sessionType.Name,
		&sessionType.Description,
		&sessionType.MinParticipants,
		&sessionType.MaxParticipants,
		&sessionType.PricePerPerson,
		&sessionType.DurationMinutes,
		&sessionType.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sessionType.CreatedAt = createdAt.Time
	sessionType.UpdatedAt = updatedAt.Time

	return &sessionType, nil
}
