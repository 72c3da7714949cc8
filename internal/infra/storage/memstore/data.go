package memstore

import (
	"maps"
	"slices"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

type data struct {
	services map[int64]domain.Service
	rooms    map[int64]domain.Room
	staff    map[int64]domain.StaffMember
	schedule []domain.StaffScheduleEntry
	bookings map[int64]domain.Booking
	history  []domain.BookingHistoryEntry

	lastServiceID  int64
	lastRoomID     int64
	lastStaffID    int64
	lastScheduleID int64
	lastBookingID  int64
	lastHistoryID  int64
}

func newData() *data {
	return &data{
		services: make(map[int64]domain.Service),
		rooms:    make(map[int64]domain.Room),
		staff:    make(map[int64]domain.StaffMember),
		bookings: make(map[int64]domain.Booking),
	}
}

// clone копирует данные. Записи хранятся по значению и не изменяются на месте,
// поэтому вложенные срезы (AllowedRoomIDs, Specializations) можно разделять
func (d *data) clone() *data {
	c := *d
	c.services = maps.Clone(d.services)
	c.rooms = maps.Clone(d.rooms)
	c.staff = maps.Clone(d.staff)
	c.bookings = maps.Clone(d.bookings)
	c.schedule = slices.Clone(d.schedule)
	c.history = slices.Clone(d.history)
	return &c
}
