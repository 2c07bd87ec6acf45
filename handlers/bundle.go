package handlers

import (
	staffRepoPkg "citaflow/database/repository/staff"
	"citaflow/services/appointment"
	"citaflow/services/availability"
	"citaflow/services/notification"
	"citaflow/services/staff"
)

// HandlerBundle groups all endpoint handlers over their services.
type HandlerBundle struct {
	StaffRepo staffRepoPkg.StaffRepository

	Availability  availability.AvailabilityService
	Appointments  appointment.AppointmentService
	Directory     staff.DirectoryService
	Notifications notification.NotificationService
}
