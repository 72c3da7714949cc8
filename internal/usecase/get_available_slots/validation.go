package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	for _, id := range req.StaffIDs {
		if id <= 0 {
			return fmt.Errorf("%w: staffIDs must be positive", ErrInvalidInput)
		}
	}
	for _, id := range req.RoomIDs {
		if id <= 0 {
			return fmt.Errorf("%w: roomIDs must be positive", ErrInvalidInput)
		}
	}
	return nil
}
