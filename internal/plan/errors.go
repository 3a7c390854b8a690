package plan

import "github.com/myrjola/ironplan/internal/errors"

var (
	// ErrNotFound is returned when a plan, session, or exercise does not exist.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrInvalidInput is returned for malformed plan definitions or policies.
	ErrInvalidInput = errors.NewSentinel("invalid input")
	// ErrWeekOutOfRange is returned when an adjustment references a week
	// outside the plan's span.
	ErrWeekOutOfRange = errors.NewSentinel("week out of range")
)
