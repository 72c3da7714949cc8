// Package compatibility правила совместимости услуги с комнатой и мастером.
// Функции пакета не имеют побочных эффектов
package compatibility

import "github.com/m04kA/SMC-SpaBookingService/internal/domain"

// Rule первое нарушенное правило совместимости
type Rule int

const (
	RuleNone Rule = iota
	RuleRoomInactive
	RuleCapacity
	RuleDrainage
	RuleAllowList
	RuleServiceInactive
)

func (r Rule) String() string {
	switch r {
	case RuleNone:
		return "compatible"
	case RuleRoomInactive:
		return "room_inactive"
	case RuleCapacity:
		return "insufficient_capacity"
	case RuleDrainage:
		return "drainage_required"
	case RuleAllowList:
		return "room_not_allowed"
	case RuleServiceInactive:
		return "service_inactive"
	default:
		return "unknown"
	}
}

// Evaluate возвращает первое нарушенное правило или RuleNone.
// Порядок проверки: услуга активна, комната активна, вместимость, дренаж, список разрешенных комнат
func Evaluate(service *domain.Service, room *domain.Room) Rule {
	if !service.Active {
		return RuleServiceInactive
	}
	if !room.Active {
		return RuleRoomInactive
	}
	if room.BedCapacity < service.MinRoomCapacity {
		return RuleCapacity
	}
	if service.RequiresSpecializedDrainage && !room.HasSpecializedDrainage {
		return RuleDrainage
	}
	if len(service.AllowedRoomIDs) > 0 && !containsID(service.AllowedRoomIDs, room.ID) {
		return RuleAllowList
	}
	return RuleNone
}

// IsCompatible проверяет, подходит ли комната для услуги
func IsCompatible(service *domain.Service, room *domain.Room) bool {
	return Evaluate(service, room) == RuleNone
}

// StaffQualified проверяет, что мастер активен и выполняет категорию услуги
func StaffQualified(service *domain.Service, staff *domain.StaffMember) bool {
	if !staff.Active {
		return false
	}
	if service == nil {
		return true
	}
	return staff.HasSpecialization(service.Category)
}

// FilterRooms оставляет совместимые с услугой комнаты в исходном порядке
func FilterRooms(service *domain.Service, rooms []*domain.Room) []*domain.Room {
	out := make([]*domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if IsCompatible(service, room) {
			out = append(out, room)
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
