package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Date      time.Time // Дата (без времени)
	ServiceID *int64    // Услуга (опционально, без нее используется длительность по умолчанию)
	StaffIDs  []int64   // Фильтр по мастерам (опционально)
	RoomIDs   []int64   // Фильтр по комнатам (опционально)
}

// Response модель ответа со слотами дня
type Response struct {
	Date      time.Time
	ServiceID *int64
	Slots     []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime           types.TimeString
	EndTime             types.TimeString
	AvailableStaffCount int
	AvailableRoomCount  int
	IsAvailable         bool
	SuggestedStaffID    *int64
	SuggestedRoomID     *int64
}
