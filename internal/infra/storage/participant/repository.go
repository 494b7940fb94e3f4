package participant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с участниками занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория участников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового участника занятия
// Вызывается внутри транзакции вместе с инкрементом счетчика участников
func (r *Repository) Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("participants").
		Columns(
			"tenant_id",
			"session_id",
			"customer_id",
			"name",
			"email",
			"phone",
			"status",
			"paid",
		).
		Values(
			p.TenantID,
			p.SessionID,
			p.CustomerID,
			p.Name,
			p.Email,
			p.Phone,
			p.Status,
			p.Paid,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает участника занятия по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, sessionID, id int64) (*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_id",
		"customer_id",
		"name",
		"email",
		"phone",
		"status",
		"paid",
		"created_at",
		"updated_at",
	).
		From("participants").
		Where(squirrel.Eq{"id": id, "session_id": sessionID, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := r.scanParticipant(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan participant: %v", ErrScanRow, err)
	}

	return p, nil
}

// ListBySession получает всех участников занятия в порядке записи
func (r *Repository) ListBySession(ctx context.Context, tenantID, sessionID int64) ([]*domain.Participant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"session_id",
		"customer_id",
		"name",
		"email",
		"phone",
		"status",
		"paid",
		"created_at",
		"updated_at",
	).
		From("participants").
		Where(squirrel.Eq{"session_id": sessionID, "tenant_id": tenantID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := r.scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySession - scan row: %v", ErrScanRow, err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySession - rows error: %v", ErrScanRow, err)
	}

	return participants, nil
}

// UpdateStatus обновляет статус посещаемости участника
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, sessionID, id int64, status domain.ParticipantStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("participants").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "session_id": sessionID, "tenant_id": tenantID}).
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
		return ErrParticipantNotFound
	}

	return nil
}

// CheckInAllConfirmed переводит всех confirmed участников занятия в checked_in
// Участники с уже зафиксированной посещаемостью не затрагиваются.
// Возвращает количество переведенных участников
func (r *Repository) CheckInAllConfirmed(ctx context.Context, tenantID, sessionID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("participants").
		Set("status", domain.ParticipantStatusCheckedIn).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"session_id": sessionID,
			"tenant_id":  tenantID,
			"status":     domain.ParticipantStatusConfirmed,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CheckInAllConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CheckInAllConfirmed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CheckInAllConfirmed - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// MarkPaid отмечает перечисленных участников занятия как оплативших
// Несуществующие или чужие ID молча пропускаются (best-effort bulk).
// Возвращает количество фактически обновленных участников
func (r *Repository) MarkPaid(ctx context.Context, tenantID, sessionID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("participants").
		Set("paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":         ids,
			"session_id": sessionID,
			"tenant_id":  tenantID,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete удаляет участника занятия (hard delete)
// Используется при снятии участника до начала занятия;
// счетчик участников декрементируется в той же транзакции
func (r *Repository) Delete(ctx context.Context, tenantID, sessionID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("participants").
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
		return ErrParticipantNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanParticipant сканирует строку результата в доменную модель
func (r *Repository) scanParticipant(row rowScanner) (*domain.Participant, error) {
	var p domain.Participant
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.SessionID,
		&p.CustomerID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Status,
		&p.Paid,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
