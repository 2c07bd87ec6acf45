package notification

import (
	"context"

	"citaflow/models"
)

// Mailer delivers a fully rendered email. Implementations are
// provider-agnostic; rendering happens here, delivery there.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationService persists in-app notifications and fans them out to
// push and email best-effort. Delivery failures are logged and dropped; the
// stored row is the durable part.
type NotificationService interface {
	// AppointmentConfirmed notifies the involved staff about a fresh booking.
	AppointmentConfirmed(ctx context.Context, appt *models.Appointment, involved []models.StaffMember)
	// AppointmentCancelled notifies the involved staff about a cancellation.
	AppointmentCancelled(ctx context.Context, appt *models.Appointment, involved []models.StaffMember)
	// Achievement sends a gamified notification to the agent. period is the
	// already-claimed marker period the message refers to.
	Achievement(ctx context.Context, agent models.StaffMember, kind, period string)

	List(ctx context.Context, staffID int, unreadOnly bool, limit int64) ([]models.Notification, int64, error)
	MarkAllRead(ctx context.Context, staffID int) (int64, error)
}
