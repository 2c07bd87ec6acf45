// File: services/availability/interface.go
package availability

import (
	"context"
	"time"

	"citaflow/models"
)

// AvailabilityService computes the unified busy/free view for a set of staff
// members across the three commitment sources: synced external calendars,
// confirmed appointments, and weekly intent plans.
type AvailabilityService interface {
	// GetBusyIntervals aggregates busy intervals for the staff ids over an
	// optional [from, to] window. Staff without an external auth token are
	// reported in MissingAuth and excluded from every source read.
	GetBusyIntervals(ctx context.Context, staffIDs []int, from, to *time.Time) (*models.AvailabilityResult, error)
}
