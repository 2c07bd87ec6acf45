package staff

import (
	"context"
	"fmt"

	settingsRepo "citaflow/database/repository/settings"
	staffRepo "citaflow/database/repository/staff"
	"citaflow/models"
)

// DirectoryService lists bookable staff together with which meeting
// integrations are usable for each of them, so the agenda UI can offer the
// right provider per agent up front.
type DirectoryService interface {
	ListAgendaStaff(ctx context.Context) ([]models.AgendaStaffEntry, error)
}

// DefaultDirectoryService is the production implementation.
type DefaultDirectoryService struct {
	Staff    staffRepo.StaffRepository
	Tokens   settingsRepo.IntegrationTokenRepository
	Settings settingsRepo.MeetingSettingsRepository
}

func (s *DefaultDirectoryService) ListAgendaStaff(ctx context.Context) ([]models.AgendaStaffEntry, error) {
	members, err := s.Staff.List(ctx, true, true)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}

	authIDs := make([]string, 0, len(members))
	staffIDs := make([]int, 0, len(members))
	for _, m := range members {
		staffIDs = append(staffIDs, m.ID)
		if m.HasAuth() {
			authIDs = append(authIDs, *m.AuthID)
		}
	}

	providersByAuth, err := s.Tokens.ListProviders(ctx, authIDs)
	if err != nil {
		return nil, fmt.Errorf("listing integrations: %w", err)
	}
	settings, err := s.Settings.ListByStaff(ctx, staffIDs)
	if err != nil {
		return nil, fmt.Errorf("listing meeting settings: %w", err)
	}
	settingsByStaff := make(map[int][]models.MeetingSettings)
	for _, st := range settings {
		settingsByStaff[st.StaffID] = append(settingsByStaff[st.StaffID], st)
	}

	entries := make([]models.AgendaStaffEntry, 0, len(members))
	for _, m := range members {
		entry := models.AgendaStaffEntry{StaffMember: m, IntegrationProviders: []string{}}
		if m.HasAuth() {
			entry.IntegrationProviders = append(entry.IntegrationProviders, providersByAuth[*m.AuthID]...)
			entry.GoogleMeetAuto, err = s.googleMeetAuto(ctx, *m.AuthID, entry.IntegrationProviders)
			if err != nil {
				return nil, err
			}
		}
		for _, st := range settingsByStaff[m.ID] {
			switch st.Provider {
			case models.ProviderZoom:
				entry.ZoomConfigured = st.MeetingURL != ""
				entry.ZoomLegacy = st.Legacy
			case models.ProviderTeams:
				entry.TeamsConfigured = st.MeetingURL != ""
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// googleMeetAuto reports whether auto link generation is available: a stored
// google token whose scopes do not carry the opt-out marker.
func (s *DefaultDirectoryService) googleMeetAuto(ctx context.Context, authID string, providers []string) (bool, error) {
	hasGoogle := false
	for _, p := range providers {
		if p == models.ProviderGoogleMeet {
			hasGoogle = true
			break
		}
	}
	if !hasGoogle {
		return false, nil
	}
	token, err := s.Tokens.Get(ctx, authID, models.ProviderGoogleMeet)
	if err != nil {
		return false, fmt.Errorf("loading integration token: %w", err)
	}
	if token == nil {
		return false, nil
	}
	return !token.AutoMeetDisabled(), nil
}
