package sim

import "errors"

// Configuration errors. Both are fatal at setup; callers match them with
// errors.Is.
var (
	// ErrInvalidDelay is returned when an event is scheduled in the past.
	ErrInvalidDelay = errors.New("invalid delay")

	// ErrInvalidCapacity is returned when a resource pool is created
	// with a non-positive capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")
)
