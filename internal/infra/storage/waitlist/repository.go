package waitlist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с листом ожидания
// Все мутации выполняются внутри транзакции, удерживающей FOR UPDATE
// на строке занятия: это гарантирует последовательную выдачу позиций
// без пропусков и гонок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись листа ожидания
// Позиция вычисляется вызывающей стороной внутри критической секции
func (r *Repository) Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"tenant_id",
			"session_id",
			"customer_id",
			"name",
			"email",
			"phone",
			"position",
		).
		Values(
			e.TenantID,
			e.SessionID,
			e.CustomerID,
			e.Name,
			e.Email,
			e.Phone,
			e.Position,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time

	return e, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, sessionID, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_id",
		"customer_id",
		"name",
		"email",
		"phone",
		"position",
		"created_at",
	).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id, "session_id": sessionID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	e, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return e, nil
}

// GetFirst получает запись с наименьшей позицией (голову очереди)
// Используется при продвижении без явно указанной записи (строгий FIFO)
func (r *Repository) GetFirst(ctx context.Context, tenantID, sessionID int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_id",
		"customer_id",
		"name",
		"email",
		"phone",
		"position",
		"created_at",
	).
		From("waitlist_entries").
		Where(squirrel.Eq{"session_id": sessionID, "tenant_id": tenantID}).
		OrderBy("position ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFirst - build select query: %v", ErrBuildQuery, err)
	}

	e, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEmptyWaitlist
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirst - scan entry: %v", ErrScanRow, err)
	}

	return e, nil
}

// ListBySession получает записи листа ожидания занятия по возрастанию позиции
func (r *Repository) ListBySession(ctx context.Context, tenantID, sessionID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_id",
		"customer_id",
		"name",
		"email",
		"phone",
		"position",
		"created_at",
	).
		From("waitlist_entries").
		Where(squirrel.Eq{"session_id": sessionID, "tenant_id": tenantID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySession - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySession - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// MaxPosition возвращает максимальную позицию в листе ожидания занятия
// Для пустого листа возвращает 0
func (r *Repository) MaxPosition(ctx context.Context, tenantID, sessionID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(position), 0)").
		From("waitlist_entries").
		Where(squirrel.Eq{"session_id": sessionID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxPosition - build select query: %v", ErrBuildQuery, err)
	}

	var max int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: MaxPosition - scan max position: %v", ErrScanRow, err)
	}

	return max, nil
}

// Delete удаляет запись листа ожидания
func (r *Repository) Delete(ctx context.Context, tenantID, sessionID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Eq{"id": id, "session_id": sessionID, "tenant_id": tenantID}).
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
		return ErrEntryNotFound
	}

	return nil
}

// Renumber восстанавливает непрерывную последовательность позиций 1..N
// Вызывается после каждого удаления/продвижения внутри той же транзакции.
// Обновляются только записи, чья позиция сместилась
func (r *Repository) Renumber(ctx context.Context, tenantID, sessionID int64) error {
	entries, err := r.ListBySession(ctx, tenantID, sessionID)
	if err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	for i, e := range entries {
		expected := i + 1
		if e.Position == expected {
			continue
		}

		query, args, err := psqlbuilder.Update("waitlist_entries").
			Set("position", expected).
			Where(squirrel.Eq{"id": e.ID, "tenant_id": tenantID}).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: Renumber - build update query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Renumber - execute update: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry сканирует строку результата в доменную модель
func (r *Repository) scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry
	var createdAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.SessionID,
		&e.CustomerID,
		&e.Name,
		&e.Email,
		&e.Phone,
		&e.Position,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = createdAt.Time

	return &e, nil
}
