// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"citaflow/models"
)

// InvolvedAppointment is one appointment merged across the agent and
// supervisor roles: when one id appears in both role queries, the two staff
// references collapse into a single record carrying every involved token, so
// the same appointment is never expanded from two fetched copies.
type InvolvedAppointment struct {
	models.Appointment
	InvolvedAuthIDs []string
}

// ListFilter narrows an appointment listing. AgentID is the internal staff
// id, the same identifier callers already hold for availability queries.
type ListFilter struct {
	State   string
	AgentID int
	From    *time.Time
	To      *time.Time
	Limit   int64
}

// AppointmentRepository persists agenda appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// SetCancelled transitions a confirmed appointment to cancelled and
	// stores the optional reason. It reports whether a transition actually
	// happened, so repeated cancels stay idempotent.
	SetCancelled(ctx context.Context, id string, reason *string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.Appointment, error)
	// FindConfirmedInvolving returns confirmed appointments where any of the
	// given tokens is agent or supervisor, merged per appointment id. The
	// window filter is exact: start < to AND end > from.
	FindConfirmedInvolving(ctx context.Context, authIDs []string, from, to *time.Time) ([]InvolvedAppointment, error)
	// CountConfirmedStarting counts an agent's confirmed appointments whose
	// start falls in [from, to).
	CountConfirmedStarting(ctx context.Context, agentAuthID string, from, to time.Time) (int64, error)
}
