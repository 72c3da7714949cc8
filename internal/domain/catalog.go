package domain

// Service is a bookable spa treatment
type Service struct {
	ID                          int64
	Name                        string
	DurationMinutes             int
	Category                    string
	RequiresSpecializedDrainage bool
	MinRoomCapacity             int
	AllowedRoomIDs              []int64 // empty = any room
	Price                       float64
	Active                      bool
}

// Room is a treatment room
type Room struct {
	ID                     int64
	Name                   string
	BedCapacity            int
	HasSpecializedDrainage bool
	Active                 bool
}

// StaffMember is a therapist who performs services of the categories listed in Specializations
type StaffMember struct {
	ID              int64
	Name            string
	Specializations []string
	Active          bool
}

// HasSpecialization reports whether the staff member performs the given service category.
// An empty category is performed by anyone.
func (s *StaffMember) HasSpecialization(category string) bool {
	if category == "" {
		return true
	}
	for _, spec := range s.Specializations {
		if spec == category {
			return true
		}
	}
	return false
}
