package provisioning

import (
	"context"
	"fmt"
	"strings"

	settingsRepo "citaflow/database/repository/settings"
	"citaflow/models"
	"citaflow/utils"

	"go.uber.org/zap"
)

// DefaultProvisioningService implements the per-provider link policy.
// google_meet is the only provider that can mint links; zoom and teams
// always resolve from stored settings.
type DefaultProvisioningService struct {
	Settings settingsRepo.MeetingSettingsRepository
	Tokens   settingsRepo.IntegrationTokenRepository
	Meet     *GoogleMeetClient
}

// NewProvisioningService wires the policy over its stores and the Google
// Meet client.
func NewProvisioningService(settings settingsRepo.MeetingSettingsRepository, tokens settingsRepo.IntegrationTokenRepository, meet *GoogleMeetClient) *DefaultProvisioningService {
	return &DefaultProvisioningService{Settings: settings, Tokens: tokens, Meet: meet}
}

func (s *DefaultProvisioningService) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	provider := models.NormalizeProvider(req.Provider)

	// An explicit per-booking URL overrides every stored or generated link.
	if req.ExplicitURL != nil && strings.TrimSpace(*req.ExplicitURL) != "" {
		url := strings.TrimSpace(*req.ExplicitURL)
		return &ProvisionResult{URL: &url}, nil
	}

	switch provider {
	case models.ProviderGoogleMeet:
		return s.provisionGoogleMeet(ctx, req)
	case models.ProviderZoom, models.ProviderTeams:
		return s.provisionStored(ctx, req, provider)
	default:
		return nil, newProvisioningError(provider, "unknown provider")
	}
}

func (s *DefaultProvisioningService) provisionGoogleMeet(ctx context.Context, req ProvisionRequest) (*ProvisionResult, error) {
	if !req.GenerateLink {
		// Booking proceeds without a link; the agent shares one manually.
		return &ProvisionResult{}, nil
	}

	token, err := s.Tokens.Get(ctx, req.AgentAuthID, models.ProviderGoogleMeet)
	if err != nil {
		return nil, fmt.Errorf("loading integration token: %w", err)
	}
	if token == nil {
		return nil, newProvisioningError(models.ProviderGoogleMeet, "agent has no calendar integration")
	}
	if token.AutoMeetDisabled() {
		return nil, newProvisioningError(models.ProviderGoogleMeet, "agent opted out of auto-generated links")
	}

	url, eventID, err := s.Meet.CreateMeeting(ctx, token, req.Title, req.Start, req.End, req.RequestID)
	if err != nil {
		return nil, newProvisioningError(models.ProviderGoogleMeet, "link generation failed: %v", err)
	}
	return &ProvisionResult{URL: &url, ExternalEventID: &eventID}, nil
}

func (s *DefaultProvisioningService) provisionStored(ctx context.Context, req ProvisionRequest, provider string) (*ProvisionResult, error) {
	if req.GenerateLink {
		return nil, newProvisioningError(provider, "provider cannot auto-generate links")
	}

	settings, err := s.Settings.Get(ctx, req.AgentID, provider)
	if err != nil {
		return nil, fmt.Errorf("loading meeting settings: %w", err)
	}
	if settings == nil || settings.MeetingURL == "" {
		return nil, newProvisioningError(provider, "no stored meeting settings for agent %d", req.AgentID)
	}

	// The stored URL is returned unmodified; the legacy flag only surfaces a
	// UI re-confirmation hint.
	url := settings.MeetingURL
	return &ProvisionResult{URL: &url, LegacySettings: settings.Legacy}, nil
}

func (s *DefaultProvisioningService) CancelRemote(ctx context.Context, appt *models.Appointment) error {
	if appt.MeetingProvider != models.ProviderGoogleMeet || appt.ExternalEventID == nil {
		return nil
	}

	token, err := s.Tokens.Get(ctx, appt.AgentAuthID, models.ProviderGoogleMeet)
	if err != nil {
		return fmt.Errorf("loading integration token: %w", err)
	}
	if token == nil {
		utils.GetLogger().Warn("skipping remote meeting cleanup, integration gone",
			zap.String("appointmentId", appt.ID))
		return nil
	}
	return s.Meet.DeleteEvent(ctx, token, *appt.ExternalEventID)
}
