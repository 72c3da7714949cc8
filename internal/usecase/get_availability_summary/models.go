package get_availability_summary

import "time"

// Request запрос сводки
// Нулевая StartDate означает сегодня, нулевой Days - значение по умолчанию
type Request struct {
	StartDate time.Time
	Days      int
}

// Response сводка доступности по дням
type Response struct {
	StartDate time.Time
	Days      []Day
}

// Day сводка одного дня
type Day struct {
	Date            time.Time
	TotalSlots      int
	BookedSlots     int
	AvailableSlots  int
	HasAvailability bool
}
