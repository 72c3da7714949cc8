package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository расписание мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDate получает все интервалы расписания на дату
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.StaffScheduleEntry, error) {
	return r.list(ctx, "ListByDate", squirrel.Eq{"schedule_date": domain.DateOnly(date)})
}

// ListByStaffAndDate получает интервалы расписания мастера на дату
func (r *Repository) ListByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.StaffScheduleEntry, error) {
	return r.list(ctx, "ListByStaffAndDate", squirrel.Eq{
		"staff_id":      staffID,
		"schedule_date": domain.DateOnly(date),
	})
}

// ListInRange получает интервалы расписания за период [from, to] включительно
func (r *Repository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.StaffScheduleEntry, error) {
	return r.list(ctx, "ListInRange", squirrel.And{
		squirrel.GtOrEq{"schedule_date": domain.DateOnly(from)},
		squirrel.LtOrEq{"schedule_date": domain.DateOnly(to)},
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.StaffScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "schedule_date", "start_time", "end_time", "status").
		From("staff_schedules").
		Where(where).
		OrderBy("schedule_date ASC", "staff_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]*domain.StaffScheduleEntry, 0)
	for rows.Next() {
		var e domain.StaffScheduleEntry
		if err := rows.Scan(&e.ID, &e.StaffID, &e.Date, &e.StartTime, &e.EndTime, &e.Status); err != nil {
			return nil, fmt.Errorf("%w: %s - scan entry: %w", ErrScanRow, op, err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return entries, nil
}
