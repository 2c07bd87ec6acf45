package provisioning

import (
	"context"
	"time"

	"citaflow/models"
)

// ProvisionRequest carries everything the per-provider policy needs to
// resolve a meeting link for one booking.
type ProvisionRequest struct {
	AgentID      int
	AgentAuthID  string
	Provider     string
	ExplicitURL  *string
	GenerateLink bool
	Start        time.Time
	End          time.Time
	Title        string
	// RequestID seeds conference creation so retried bookings do not mint
	// duplicate meetings.
	RequestID string
}

// ProvisionResult is the resolved link. URL stays nil when the booking
// legitimately proceeds without one.
type ProvisionResult struct {
	URL             *string
	ExternalEventID *string
	// LegacySettings surfaces the re-confirmation hint of migrated stored
	// settings; it never changes the resolved URL.
	LegacySettings bool
}

// ProvisioningService resolves meeting links per provider and tears remote
// artifacts down again on cancellation.
type ProvisioningService interface {
	Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error)
	// CancelRemote removes the provider-side artifact of a cancelled
	// appointment. A meeting already gone remotely is success.
	CancelRemote(ctx context.Context, appt *models.Appointment) error
}
