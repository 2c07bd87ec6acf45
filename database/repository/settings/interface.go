// File: database/repository/settings/interface.go
package settingsRepo

import (
	"context"

	"citaflow/models"
)

// MeetingSettingsRepository reads manually stored meeting settings
// (zoom/teams) per staff member.
type MeetingSettingsRepository interface {
	// Get fetches the settings for one (staff, provider) pair, nil when none
	// are stored.
	Get(ctx context.Context, staffID int, provider string) (*models.MeetingSettings, error)
	// ListByStaff fetches every stored provider setting for the staff ids.
	ListByStaff(ctx context.Context, staffIDs []int) ([]models.MeetingSettings, error)
}

// IntegrationTokenRepository stores OAuth tokens for external calendar
// integrations, keyed by auth id.
type IntegrationTokenRepository interface {
	Get(ctx context.Context, authID, provider string) (*models.IntegrationToken, error)
	Upsert(ctx context.Context, token *models.IntegrationToken) error
	// ListProviders returns, per auth id, which providers have a stored token.
	ListProviders(ctx context.Context, authIDs []string) (map[string][]string, error)
}
