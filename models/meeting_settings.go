package models

import "time"

// MeetingSettings holds one staff member's manually stored meeting link for a
// provider that cannot auto-generate links (zoom, teams). google_meet never
// has stored settings; its provisioning depends on the calendar integration
// token instead.
type MeetingSettings struct {
	StaffID    int       `json:"staffId" bson:"staff_id"`
	Provider   string    `json:"provider" bson:"provider"`
	MeetingURL string    `json:"meetingUrl" bson:"meeting_url"`
	MeetingID  *string   `json:"meetingId,omitempty" bson:"meeting_id,omitempty"`
	Password   *string   `json:"password,omitempty" bson:"password,omitempty"`
	// Legacy marks settings migrated from the old single-field format. It is
	// a UI re-confirmation hint only and never changes provisioning.
	Legacy    bool      `json:"legacy" bson:"legacy"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// IntegrationToken is a stored OAuth token for an external calendar
// integration, keyed by the staff member's auth id.
type IntegrationToken struct {
	AuthID       string     `json:"authId" bson:"auth_id"`
	Provider     string     `json:"provider" bson:"provider"`
	AccessToken  string     `json:"-" bson:"access_token"`
	RefreshToken string     `json:"-" bson:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" bson:"expires_at,omitempty"`
	Scopes       []string   `json:"scopes,omitempty" bson:"scopes,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`
}

// ScopeAutoMeetDisabled is the explicit opt-out marker: staff carrying it
// keep their integration for busy reads but never get auto-generated links.
const ScopeAutoMeetDisabled = "auto-meet-disabled"

// AutoMeetDisabled reports whether the token opts the owner out of
// auto-generated meeting links.
func (t IntegrationToken) AutoMeetDisabled() bool {
	for _, s := range t.Scopes {
		if s == ScopeAutoMeetDisabled {
			return true
		}
	}
	return false
}
