package provisioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"citaflow/models"
)

func strPtr(s string) *string { return &s }

type fakeSettingsRepo struct {
	settings map[string]*models.MeetingSettings
	err      error
}

func settingsKey(staffID int, provider string) string {
	return provider + "/" + string(rune('0'+staffID))
}

func (f *fakeSettingsRepo) Get(_ context.Context, staffID int, provider string) (*models.MeetingSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings[settingsKey(staffID, provider)], nil
}

func (f *fakeSettingsRepo) ListByStaff(context.Context, []int) ([]models.MeetingSettings, error) {
	return nil, nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.IntegrationToken
}

func (f *fakeTokenRepo) Get(_ context.Context, authID, provider string) (*models.IntegrationToken, error) {
	return f.tokens[authID+"/"+provider], nil
}

func (f *fakeTokenRepo) Upsert(context.Context, *models.IntegrationToken) error { return nil }

func (f *fakeTokenRepo) ListProviders(context.Context, []string) (map[string][]string, error) {
	return nil, nil
}

func baseRequest(provider string, generate bool) ProvisionRequest {
	start := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	return ProvisionRequest{
		AgentID:      7,
		AgentAuthID:  "tok-7",
		Provider:     provider,
		GenerateLink: generate,
		Start:        start,
		End:          start.Add(time.Hour),
		Title:        "Appointment",
		RequestID:    "req-1",
	}
}

func TestProvisionExplicitURLOverridesEverything(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	req := baseRequest(models.ProviderZoom, true)
	req.ExplicitURL = strPtr("  https://example.com/my-room ")
	result, err := svc.Provision(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.URL == nil || *result.URL != "https://example.com/my-room" {
		t.Fatalf("url = %v", result.URL)
	}
}

func TestProvisionZoomCannotAutoGenerate(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	_, err := svc.Provision(context.Background(), baseRequest(models.ProviderZoom, true))
	var provErr *ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProvisioningError, got %v", err)
	}
	if provErr.Provider != models.ProviderZoom {
		t.Fatalf("provider = %q", provErr.Provider)
	}
}

func TestProvisionZoomWithoutSettingsFails(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	_, err := svc.Provision(context.Background(), baseRequest(models.ProviderZoom, false))
	var provErr *ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProvisioningError, got %v", err)
	}
}

func TestProvisionZoomReturnsStoredURLUnmodified(t *testing.T) {
	settings := &fakeSettingsRepo{settings: map[string]*models.MeetingSettings{
		settingsKey(7, models.ProviderZoom): {
			StaffID:    7,
			Provider:   models.ProviderZoom,
			MeetingURL: "https://zoom.us/j/123?pwd=abc",
			Legacy:     true,
		},
	}}
	svc := NewProvisioningService(settings, &fakeTokenRepo{}, nil)

	result, err := svc.Provision(context.Background(), baseRequest(models.ProviderZoom, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.URL == nil || *result.URL != "https://zoom.us/j/123?pwd=abc" {
		t.Fatalf("url = %v", result.URL)
	}
	if !result.LegacySettings {
		t.Fatal("legacy hint lost")
	}
}

func TestProvisionGoogleMeetWithoutIntegrationFails(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	_, err := svc.Provision(context.Background(), baseRequest(models.ProviderGoogleMeet, true))
	var provErr *ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProvisioningError, got %v", err)
	}
}

func TestProvisionGoogleMeetRespectsOptOut(t *testing.T) {
	tokens := &fakeTokenRepo{tokens: map[string]*models.IntegrationToken{
		"tok-7/" + models.ProviderGoogleMeet: {
			AuthID:      "tok-7",
			Provider:    models.ProviderGoogleMeet,
			AccessToken: "at",
			Scopes:      []string{"calendar.events", models.ScopeAutoMeetDisabled},
		},
	}}
	svc := NewProvisioningService(&fakeSettingsRepo{}, tokens, nil)

	_, err := svc.Provision(context.Background(), baseRequest(models.ProviderGoogleMeet, true))
	var provErr *ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("want ProvisioningError, got %v", err)
	}
}

func TestProvisionGoogleMeetWithoutGenerationSkipsLink(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	result, err := svc.Provision(context.Background(), baseRequest(models.ProviderGoogleMeet, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.URL != nil {
		t.Fatalf("url = %v, want none", *result.URL)
	}
}

func TestCancelRemoteIgnoresManualProviders(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	appt := &models.Appointment{
		ID:              "appt-1",
		MeetingProvider: models.ProviderZoom,
		ExternalEventID: strPtr("evt-1"),
	}
	if err := svc.CancelRemote(context.Background(), appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancelRemoteSkipsWhenIntegrationGone(t *testing.T) {
	svc := NewProvisioningService(&fakeSettingsRepo{}, &fakeTokenRepo{}, nil)

	appt := &models.Appointment{
		ID:              "appt-2",
		AgentAuthID:     "tok-7",
		MeetingProvider: models.ProviderGoogleMeet,
		ExternalEventID: strPtr("evt-2"),
	}
	if err := svc.CancelRemote(context.Background(), appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
