package models

import "time"

// Appointment lifecycle states. There is no pending state: an appointment is
// created already confirmed or it is not created at all, and the only legal
// transition is confirmed -> cancelled.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Meeting providers.
const (
	ProviderGoogleMeet = "google_meet"
	ProviderZoom       = "zoom"
	ProviderTeams      = "teams"
)

// Appointment is one persisted agenda booking. A single row may involve two
// staff members (agent plus optional supervisor) and therefore fans out into
// up to two BusyIntervals on the read side. Rows are never deleted;
// cancellation is a soft state transition that keeps every other field for
// auditing.
type Appointment struct {
	ID               string    `json:"id" bson:"id"`
	ProspectID       *int64    `json:"prospectId,omitempty" bson:"prospect_id,omitempty"`
	ProspectName     *string   `json:"prospectName,omitempty" bson:"prospect_name,omitempty"`
	AgentID          int       `json:"agentId" bson:"agent_id"`
	AgentAuthID      string    `json:"agentAuthId" bson:"agent_auth_id"`
	SupervisorID     *int      `json:"supervisorId,omitempty" bson:"supervisor_id,omitempty"`
	SupervisorAuthID *string   `json:"supervisorAuthId,omitempty" bson:"supervisor_auth_id,omitempty"`
	Start            time.Time `json:"start" bson:"start"`
	End              time.Time `json:"end" bson:"end"`
	State            string    `json:"state" bson:"state"`
	MeetingProvider  string    `json:"meetingProvider" bson:"meeting_provider"`
	MeetingURL       string    `json:"meetingUrl" bson:"meeting_url"`
	ExternalEventID  *string   `json:"externalEventId,omitempty" bson:"external_event_id,omitempty"`
	Notes            *string   `json:"notes,omitempty" bson:"notes,omitempty"`
	CancelReason     *string   `json:"cancelReason,omitempty" bson:"cancel_reason,omitempty"`
	RequestedBy      string    `json:"requestedBy" bson:"requested_by"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updated_at"`
}

// InvolvedAuthIDs returns the external tokens of everyone the appointment
// occupies: the agent always, the supervisor when set.
func (a Appointment) InvolvedAuthIDs() []string {
	ids := []string{a.AgentAuthID}
	if a.SupervisorAuthID != nil && *a.SupervisorAuthID != "" && *a.SupervisorAuthID != a.AgentAuthID {
		ids = append(ids, *a.SupervisorAuthID)
	}
	return ids
}

// NormalizeProvider coerces arbitrary client input to a known provider,
// defaulting to google_meet.
func NormalizeProvider(value string) string {
	switch value {
	case ProviderZoom:
		return ProviderZoom
	case ProviderTeams:
		return ProviderTeams
	default:
		return ProviderGoogleMeet
	}
}
