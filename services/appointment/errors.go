package appointment

import (
	"fmt"
	"time"

	"citaflow/models"
)

// ValidationError rejects a request before any read happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError means the requested window overlaps an existing busy
// interval. It names the colliding staff member, the interval's source and
// its window so the caller can render the collision verbatim.
type ConflictError struct {
	StaffID int
	Source  models.BusySource
	Start   time.Time
	End     time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("staff %d is busy (%s) from %s to %s",
		e.StaffID, e.Source, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// NotFoundError means the referenced appointment or staff member does not
// exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// BookingBusyError means the per-staff booking serialization point could not
// be acquired in time. The request is safe to retry.
type BookingBusyError struct {
	Err error
}

func (e *BookingBusyError) Error() string {
	return fmt.Sprintf("booking temporarily unavailable: %v", e.Err)
}

func (e *BookingBusyError) Unwrap() error { return e.Err }
