package slots

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// BuildGrid возвращает начала слотов от open с шагом step, пока слот длиной duration
// целиком помещается до close
func BuildGrid(open, close types.TimeString, step, duration int) ([]types.TimeString, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: slot step must be positive", domain.ErrValidation)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}

	grid := make([]types.TimeString, 0)
	for m := open.Minutes(); m+duration <= close.Minutes(); m += step {
		t, err := types.FromMinutes(m)
		if err != nil {
			return nil, err
		}
		grid = append(grid, t)
	}
	return grid, nil
}

// IsStaffScheduled проверяет, что у мастера есть интервал available, целиком покрывающий
// [start, end), и нет пересекающихся перерывов или недоступности
func IsStaffScheduled(entries []*domain.StaffScheduleEntry, staffID int64, start, end types.TimeString) bool {
	covered := false
	for _, e := range entries {
		if e.StaffID != staffID {
			continue
		}
		if e.Status == domain.ScheduleAvailable {
			if e.Covers(start, end) {
				covered = true
			}
			continue
		}
		if e.Overlaps(start, end) {
			return false
		}
	}
	return covered
}
