package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с занятиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое занятие
// Если в контексте передана активная транзакция (через context.Value), использует её.
// GenerateRecurring создает серию занятий внутри одной транзакции:
// откат транзакции отменяет весь пакет целиком (all-or-nothing)
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"tenant_id",
			"session_type_id",
			"title",
			"description",
			"start_time",
			"end_time",
			"max_participants",
			"current_participants",
			"status",
			"host_id",
			"is_public",
			"price_per_person",
		).
		Values(
			s.TenantID,
			s.SessionTypeID,
			s.Title,
			s.Description,
			s.StartTime,
			s.EndTime,
			s.MaxParticipants,
			s.CurrentParticipants,
			s.Status,
			s.HostID,
			s.IsPublic,
			s.PricePerPerson,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает занятие по ID в рамках тенанта
// Внутри транзакции строка блокируется через FOR UPDATE:
// проверка вместимости и инкремент счетчика участников должны
// выполняться в одной критической секции на занятие
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_type_id",
		"title",
		"description",
		"start_time",
		"end_time",
		"max_participants",
		"current_participants",
		"status",
		"host_id",
		"is_public",
		"price_per_person",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("sessions").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает занятия тенанта с гибкой фильтрацией
// Поддерживает фильтрацию по типу, периоду, статусу, ведущему и видимости
func (r *Repository) List(ctx context.Context, filter domain.SessionFilter) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_type_id",
		"title",
		"description",
		"start_time",
		"end_time",
		"max_participants",
		"current_participants",
		"status",
		"host_id",
		"is_public",
		"price_per_person",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("sessions").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.SessionTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"session_type_id": *filter.SessionTypeID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.HostID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"host_id": *filter.HostID})
	}
	if filter.PublicOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_public": true})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// CountActiveByTypeID считает не отмененные и не завершенные занятия типа
// Используется при удалении типа занятия (referential invariant)
func (r *Repository) CountActiveByTypeID(ctx context.Context, tenantID, typeID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("sessions").
		Where(squirrel.Eq{"tenant_id": tenantID, "session_type_id": typeID}).
		Where(squirrel.Eq{"status": domain.ActiveSessionStatuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByTypeID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByTypeID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет изменяемые поля занятия
func (r *Repository) Update(ctx context.Context, s *domain.Session) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("title", s.Title).
		Set("description", s.Description).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("max_participants", s.MaxParticipants).
		Set("status", s.Status).
		Set("host_id", s.HostID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "tenant_id": s.TenantID}).
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
		return ErrSessionNotFound
	}

	return nil
}

// UpdateEnrollment атомарно обновляет счетчик участников и статус занятия
// Вызывается только внутри транзакции, удерживающей FOR UPDATE на строке занятия
func (r *Repository) UpdateEnrollment(ctx context.Context, tenantID, id int64, currentParticipants int, status domain.SessionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("current_participants", currentParticipants).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateEnrollment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateEnrollment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateEnrollment - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Cancel переводит занятие в терминальный статус cancelled
// Участники и лист ожидания сохраняются для истории
func (r *Repository) Cancel(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.SessionStatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// SetVisibility устанавливает флаг публичности занятия
func (r *Repository) SetVisibility(ctx context.Context, tenantID, id int64, isPublic bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("is_public", isPublic).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetVisibility - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetVisibility - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetVisibility - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// MarkCompletedBefore завершает прошедшие занятия всех тенантов
// Переводит open/full занятия с end_time раньше deadline в статус completed.
// Возвращает количество завершенных занятий
func (r *Repository) MarkCompletedBefore(ctx context.Context, deadline time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.SessionStatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.ActiveSessionStatuses}).
		Where(squirrel.Lt{"end_time": deadline}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompletedBefore - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompletedBefore - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCompletedBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession сканирует строку результата в доменную модель
func (r *Repository) scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.SessionTypeID,
		&s.Title,
		&s.Description,
		&s.StartTime,
		&s.EndTime,
		&s.MaxParticipants,
		&s.CurrentParticipants,
		&s.Status,
		&s.HostID,
		&s.IsPublic,
		&s.PricePerPerson,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		s.CancelledAt = &cancelledAt.Time
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
