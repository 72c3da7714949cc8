package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrIncompatibleResource = errors.New("room or staff is incompatible with the service")
	ErrRoomUnavailable      = errors.New("room is already booked for this time")
	ErrStaffUnavailable     = errors.New("staff member is already booked for this time")
	ErrStaffNotScheduled    = errors.New("staff member is not scheduled for this time")
	ErrResourceLocked       = errors.New("resource is locked by a concurrent booking, retry later")
	ErrNotFound             = errors.New("not found")
	ErrInternal             = errors.New("internal error")

	// ErrInvalidTransition is a validation error for a forbidden status change
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrValidation)
)
