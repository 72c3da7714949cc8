package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository журнал изменений статусов бронирований (только добавление)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в историю
func (r *Repository) Append(ctx context.Context, entry *domain.BookingHistoryEntry) (*domain.BookingHistoryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var from *string
	if entry.FromStatus != nil {
		s := string(*entry.FromStatus)
		from = &s
	}

	query, args, err := psqlbuilder.Insert("booking_history").
		Columns("booking_id", "from_status", "to_status", "changed_by", "reason").
		Values(entry.BookingID, from, string(entry.ToStatus), entry.ChangedBy, entry.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	return entry, nil
}

// ListByBooking получает историю бронирования в хронологическом порядке
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.BookingHistoryEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "from_status", "to_status", "changed_by", "reason", "created_at").
		From("booking_history").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.BookingHistoryEntry, 0)
	for rows.Next() {
		var e domain.BookingHistoryEntry
		var from sql.NullString
		if err := rows.Scan(&e.ID, &e.BookingID, &from, &e.ToStatus, &e.ChangedBy, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan entry: %w", ErrScanRow, err)
		}
		if from.Valid {
			status := domain.BookingStatus(from.String)
			e.FromStatus = &status
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
