package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/psqlbuilder"
)

// Repository справочник услуг, комнат и мастеров
// Справочник только читается: управление им вне этого сервиса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"category",
		"requires_specialized_drainage",
		"min_room_capacity",
		"allowed_room_ids",
		"price",
		"active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	var allowed pq.Int64Array
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.DurationMinutes,
		&s.Category,
		&s.RequiresSpecializedDrainage,
		&s.MinRoomCapacity,
		&allowed,
		&s.Price,
		&s.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	s.AllowedRoomIDs = []int64(allowed)
	return &s, nil
}

// GetRoom получает комнату по ID
func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	rooms, err := r.listRooms(ctx, "GetRoom", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrRoomNotFound
	}
	return rooms[0], nil
}

// ListRooms получает комнаты, упорядоченные по ID
func (r *Repository) ListRooms(ctx context.Context, activeOnly bool) ([]*domain.Room, error) {
	var where squirrel.Sqlizer = squirrel.Expr("TRUE")
	if activeOnly {
		where = squirrel.Eq{"active": true}
	}
	return r.listRooms(ctx, "ListRooms", where)
}

// GetStaff получает мастера по ID
func (r *Repository) GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error) {
	staff, err := r.listStaff(ctx, "GetStaff", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, ErrStaffNotFound
	}
	return staff[0], nil
}

// ListStaff получает мастеров, упорядоченных по ID
func (r *Repository) ListStaff(ctx context.Context, activeOnly bool) ([]*domain.StaffMember, error) {
	var where squirrel.Sqlizer = squirrel.Expr("TRUE")
	if activeOnly {
		where = squirrel.Eq{"active": true}
	}
	return r.listStaff(ctx, "ListStaff", where)
}

func (r *Repository) listRooms(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "bed_capacity", "has_specialized_drainage", "active").
		From("rooms").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.BedCapacity, &room.HasSpecializedDrainage, &room.Active); err != nil {
			return nil, fmt.Errorf("%w: %s - scan room: %w", ErrScanRow, op, err)
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return rooms, nil
}

func (r *Repository) listStaff(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "specializations", "active").
		From("staff_members").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	for rows.Next() {
		var s domain.StaffMember
		var specs pq.StringArray
		if err := rows.Scan(&s.ID, &s.Name, &specs, &s.Active); err != nil {
			return nil, fmt.Errorf("%w: %s - scan staff: %w", ErrScanRow, op, err)
		}
		s.Specializations = []string(specs)
		staff = append(staff, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return staff, nil
}
