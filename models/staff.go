package models

// StaffMember is one internal staff identity from the directory. AuthID is
// the external-identity token every busy-interval source is keyed by; staff
// without one cannot be aggregated and are reported as missingAuth instead.
type StaffMember struct {
	ID        int     `json:"id" bson:"id"`
	Email     string  `json:"email" bson:"email"`
	Name      *string `json:"name,omitempty" bson:"name,omitempty"`
	Role      string  `json:"role" bson:"role"`
	Active    bool    `json:"active" bson:"active"`
	Developer bool    `json:"developer" bson:"developer"`
	AuthID    *string `json:"authId,omitempty" bson:"auth_id,omitempty"`
	FCMToken  string  `json:"-" bson:"fcm_token,omitempty"`
}

// HasAuth reports whether the member can participate in availability reads.
func (s StaffMember) HasAuth() bool {
	return s.AuthID != nil && *s.AuthID != ""
}

// Directory roles. Admin and superuser can always manage the agenda; other
// roles need the developer flag.
const (
	RoleAdmin     = "admin"
	RoleSuperuser = "superuser"
	RoleAgent     = "agent"
)

// CanManageAgenda mirrors the role gate used by every agenda surface.
func (s StaffMember) CanManageAgenda() bool {
	if s.Role == RoleAdmin || s.Role == RoleSuperuser {
		return true
	}
	return s.Developer
}

// AgendaStaffEntry is the directory listing payload: the staff member plus
// which meeting integrations are usable for them.
type AgendaStaffEntry struct {
	StaffMember
	IntegrationProviders []string `json:"integrationProviders"`
	ZoomConfigured       bool     `json:"zoomConfigured"`
	ZoomLegacy           bool     `json:"zoomLegacy,omitempty"`
	TeamsConfigured      bool     `json:"teamsConfigured"`
	GoogleMeetAuto       bool     `json:"googleMeetAuto"`
}
