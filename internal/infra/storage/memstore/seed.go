package memstore

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// AddService добавляет услугу. Нулевой ID заменяется следующим свободным
func (s *Store) AddService(svc domain.Service) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = nextID(&s.data.lastServiceID, svc.ID)
	s.data.services[svc.ID] = svc
	return svc.ID
}

// AddRoom добавляет комнату
func (s *Store) AddRoom(room domain.Room) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	room.ID = nextID(&s.data.lastRoomID, room.ID)
	s.data.rooms[room.ID] = room
	return room.ID
}

// AddStaff добавляет мастера
func (s *Store) AddStaff(staff domain.StaffMember) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff.ID = nextID(&s.data.lastStaffID, staff.ID)
	s.data.staff[staff.ID] = staff
	return staff.ID
}

// AddScheduleEntry добавляет интервал расписания мастера
func (s *Store) AddScheduleEntry(entry domain.StaffScheduleEntry) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = nextID(&s.data.lastScheduleID, entry.ID)
	entry.Date = domain.DateOnly(entry.Date)
	s.data.schedule = append(s.data.schedule, entry)
	return entry.ID
}

// SeedDemo наполняет хранилище демонстрационным каталогом и расписанием на days дней начиная с from
func (s *Store) SeedDemo(from time.Time, days int) {
	s.AddRoom(domain.Room{ID: 1, Name: "Лаванда", BedCapacity: 1, Active: true})
	s.AddRoom(domain.Room{ID: 2, Name: "Для пар", BedCapacity: 2, Active: true})
	s.AddRoom(domain.Room{ID: 3, Name: "Хаммам", BedCapacity: 1, HasSpecializedDrainage: true, Active: true})

	s.AddService(domain.Service{ID: 1, Name: "Классический массаж", DurationMinutes: 60, Category: "massage", MinRoomCapacity: 1, Price: 3500, Active: true})
	s.AddService(domain.Service{ID: 2, Name: "Массаж для двоих", DurationMinutes: 90, Category: "massage", MinRoomCapacity: 2, Price: 7000, Active: true})
	s.AddService(domain.Service{ID: 3, Name: "Грязевое обертывание", DurationMinutes: 45, Category: "body", MinRoomCapacity: 1, RequiresSpecializedDrainage: true, Price: 4200, Active: true})

	s.AddStaff(domain.StaffMember{ID: 1, Name: "Анна", Specializations: []string{"massage"}, Active: true})
	s.AddStaff(domain.StaffMember{ID: 2, Name: "Мария", Specializations: []string{"massage", "body"}, Active: true})

	for i := 0; i < days; i++ {
		date := domain.DateOnly(from).AddDate(0, 0, i)
		for _, staffID := range []int64{1, 2} {
			s.AddScheduleEntry(domain.StaffScheduleEntry{
				StaffID:   staffID,
				Date:      date,
				StartTime: types.MustTimeString("09:00"),
				EndTime:   types.MustTimeString("18:00"),
				Status:    domain.ScheduleAvailable,
			})
		}
		s.AddScheduleEntry(domain.StaffScheduleEntry{
			StaffID:   1,
			Date:      date,
			StartTime: types.MustTimeString("13:00"),
			EndTime:   types.MustTimeString("14:00"),
			Status:    domain.ScheduleBreak,
		})
	}
}

func nextID(last *int64, id int64) int64 {
	if id == 0 {
		*last++
		return *last
	}
	if id > *last {
		*last = id
	}
	return id
}
