package domain

// ResourceKind selects which booking column a conflict check runs against
type ResourceKind int

const (
	ResourceRoom ResourceKind = iota + 1
	ResourceStaff
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceRoom:
		return "room"
	case ResourceStaff:
		return "staff"
	default:
		return "unknown"
	}
}

// ConflictType labels a conflicting booking in diagnostics
type ConflictType string

const (
	ConflictRoom  ConflictType = "room_conflict"
	ConflictStaff ConflictType = "staff_conflict"
)

// ConflictTypeFor maps a resource kind to its diagnostic label
func ConflictTypeFor(kind ResourceKind) ConflictType {
	if kind == ResourceStaff {
		return ConflictStaff
	}
	return ConflictRoom
}

// Conflict is an existing booking that overlaps a requested interval
type Conflict struct {
	Booking *Booking
	Type    ConflictType
}
