package appointment

import (
	"context"
	"time"

	appointmentRepo "citaflow/database/repository/appointment"
	"citaflow/models"
)

// CreateRequest is one booking attempt.
type CreateRequest struct {
	AgentID      int
	SupervisorID *int
	Start        time.Time
	End          time.Time
	Provider     string
	MeetingURL   *string
	GenerateLink bool
	ProspectID   *int64
	ProspectName *string
	Notes        *string
	RequestedBy  string
}

// CancelRequest cancels an existing appointment.
type CancelRequest struct {
	AppointmentID string
	Reason        *string
}

// StaffLocker is the per-staff serialization point the create path holds
// across its check-then-act window.
type StaffLocker interface {
	AcquireStaff(ctx context.Context, staffIDs []int) (func(), error)
}

// AppointmentService drives the appointment lifecycle: created confirmed or
// rejected, cancellable exactly once.
type AppointmentService interface {
	Create(ctx context.Context, req CreateRequest) (*models.Appointment, error)
	// Cancel is idempotent: cancelling an already cancelled appointment
	// succeeds without side effects.
	Cancel(ctx context.Context, req CancelRequest) (*models.Appointment, error)
	List(ctx context.Context, filter appointmentRepo.ListFilter) ([]models.Appointment, error)
}
