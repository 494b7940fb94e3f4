package stats

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GroupSessionService/pkg/psqlbuilder"
)

// Repository read-model для отчетов по занятиям
// Агрегация выполняется на стороне БД; линеаризуемость с текущими
// записями не требуется (snapshot consistency для отчетности)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Summary возвращает сводную статистику по занятиям за период
func (r *Repository) Summary(ctx context.Context, filter domain.StatsFilter) (*domain.SessionsSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var summary domain.SessionsSummary

	// Счетчики занятий и средняя заполненность
	sessionsBuilder := psqlbuilder.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.SessionStatusCompleted),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.SessionStatusCancelled),
		fmt.Sprintf("COALESCE(AVG(current_participants::float8 / NULLIF(max_participants, 0)) FILTER (WHERE status != '%s'), 0)", domain.SessionStatusCancelled),
	).
		From("sessions").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	sessionsBuilder = applyDateRange(sessionsBuilder, "start_time", filter)

	query, args, err := sessionsBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build sessions query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalSessions,
		&summary.CompletedSessions,
		&summary.CancelledSessions,
		&summary.AverageOccupancy,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - scan sessions row: %v", ErrScanRow, err)
	}

	// Общее количество участников за период
	participantsBuilder := psqlbuilder.Select("COUNT(p.id)").
		From("participants p").
		Join("sessions s ON s.id = p.session_id").
		Where(squirrel.Eq{"s.tenant_id": filter.TenantID})

	participantsBuilder = applyDateRange(participantsBuilder, "s.start_time", filter)

	query, args, err = participantsBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build participants query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.TotalParticipants); err != nil {
		return nil, fmt.Errorf("%w: Summary - scan participants row: %v", ErrScanRow, err)
	}

	// Выручка: оплатившие или пришедшие участники завершенных занятий
	revenueBuilder := psqlbuilder.Select("COALESCE(SUM(s.price_per_person), 0)").
		From("participants p").
		Join("sessions s ON s.id = p.session_id").
		Where(squirrel.Eq{"s.tenant_id": filter.TenantID, "s.status": domain.SessionStatusCompleted}).
		Where(squirrel.Or{
			squirrel.Eq{"p.paid": true},
			squirrel.Eq{"p.status": domain.ParticipantStatusCheckedIn},
		})

	revenueBuilder = applyDateRange(revenueBuilder, "s.start_time", filter)

	query, args, err = revenueBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build revenue query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.TotalRevenue); err != nil {
		return nil, fmt.Errorf("%w: Summary - scan revenue row: %v", ErrScanRow, err)
	}

	return &summary, nil
}

// PopularTypes возвращает статистику по типам занятий за период
// Сортировка по выручке по убыванию
func (r *Repository) PopularTypes(ctx context.Context, filter domain.StatsFilter) ([]*domain.TypePopularity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	revenueExpr := fmt.Sprintf(
		"COALESCE(SUM(s.price_per_person) FILTER (WHERE s.status = '%s' AND (p.paid OR p.status = '%s')), 0) AS revenue",
		domain.SessionStatusCompleted, domain.ParticipantStatusCheckedIn,
	)

	selectBuilder := psqlbuilder.Select(
		"t.id",
		"t.name",
		"COUNT(DISTINCT s.id)",
		"COUNT(p.id)",
		revenueExpr,
	).
		From("session_types t").
		Join("sessions s ON s.session_type_id = t.id").
		LeftJoin("participants p ON p.session_id = s.id").
		Where(squirrel.Eq{"t.tenant_id": filter.TenantID}).
		GroupBy("t.id", "t.name").
		OrderBy("revenue DESC")

	selectBuilder = applyDateRange(selectBuilder, "s.start_time", filter)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PopularTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: PopularTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.TypePopularity, 0)
	for rows.Next() {
		var t domain.TypePopularity
		err := rows.Scan(
			&t.SessionTypeID,
			&t.TypeName,
			&t.SessionCount,
			&t.ParticipantCount,
			&t.Revenue,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: PopularTypes - scan row: %v", ErrScanRow, err)
		}
		types = append(types, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: PopularTypes - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}

// applyDateRange добавляет фильтр по периоду к запросу
func applyDateRange(b squirrel.SelectBuilder, column string, filter domain.StatsFilter) squirrel.SelectBuilder {
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{column: *filter.StartDate})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{column: *filter.EndDate})
	}
	return b
}
