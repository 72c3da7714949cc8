package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
)

// GetService получает услугу по ID
func (s *Store) GetService(_ context.Context, id int64) (*domain.Service, error) {
	var (
		svc domain.Service
		ok  bool
	)
	s.read(func(d *data) { svc, ok = d.services[id] })
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &svc, nil
}

// GetRoom получает комнату по ID
func (s *Store) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	var (
		room domain.Room
		ok   bool
	)
	s.read(func(d *data) { room, ok = d.rooms[id] })
	if !ok {
		return nil, catalog.ErrRoomNotFound
	}
	return &room, nil
}

// GetStaff получает мастера по ID
func (s *Store) GetStaff(_ context.Context, id int64) (*domain.StaffMember, error) {
	var (
		staff domain.StaffMember
		ok    bool
	)
	s.read(func(d *data) { staff, ok = d.staff[id] })
	if !ok {
		return nil, catalog.ErrStaffNotFound
	}
	return &staff, nil
}

// ListRooms получает комнаты, упорядоченные по ID
func (s *Store) ListRooms(_ context.Context, activeOnly bool) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0)
	s.read(func(d *data) {
		for _, r := range d.rooms {
			if activeOnly && !r.Active {
				continue
			}
			room := r
			out = append(out, &room)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListStaff получает мастеров, упорядоченных по ID
func (s *Store) ListStaff(_ context.Context, activeOnly bool) ([]*domain.StaffMember, error) {
	out := make([]*domain.StaffMember, 0)
	s.read(func(d *data) {
		for _, m := range d.staff {
			if activeOnly && !m.Active {
				continue
			}
			member := m
			out = append(out, &member)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
