package provisioning

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"citaflow/config"
	settingsRepo "citaflow/database/repository/settings"
	"citaflow/models"
	"citaflow/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// tokenExpiryDrift refreshes tokens slightly before their real expiry so a
// token that goes stale mid-request never reaches the calendar API.
const tokenExpiryDrift = 2 * time.Minute

// GoogleMeetClient mints and removes Meet conferences on the agent's primary
// calendar using their stored integration token.
type GoogleMeetClient struct {
	Tokens settingsRepo.IntegrationTokenRepository
	Now    func() time.Time

	oauthConfig *oauth2.Config
}

// NewGoogleMeetClient builds the client from the configured OAuth
// credentials.
func NewGoogleMeetClient(tokens settingsRepo.IntegrationTokenRepository) *GoogleMeetClient {
	return &GoogleMeetClient{
		Tokens: tokens,
		oauthConfig: &oauth2.Config{
			ClientID:     config.AppConfig.GoogleClientID,
			ClientSecret: config.AppConfig.GoogleClientSecret,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
	}
}

func (c *GoogleMeetClient) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// freshToken returns a usable access token, refreshing and persisting it
// when the stored one expires within the drift window.
func (c *GoogleMeetClient) freshToken(ctx context.Context, stored *models.IntegrationToken) (*oauth2.Token, error) {
	token := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
	}
	if stored.ExpiresAt != nil {
		token.Expiry = *stored.ExpiresAt
	}

	expiring := stored.ExpiresAt != nil && stored.ExpiresAt.Before(c.now().Add(tokenExpiryDrift))
	if !expiring {
		return token, nil
	}
	if stored.RefreshToken == "" {
		return nil, fmt.Errorf("token for %s expired and has no refresh token", stored.AuthID)
	}

	refreshed, err := c.oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}

	stored.AccessToken = refreshed.AccessToken
	if refreshed.RefreshToken != "" {
		stored.RefreshToken = refreshed.RefreshToken
	}
	expiry := refreshed.Expiry
	stored.ExpiresAt = &expiry
	if err := c.Tokens.Upsert(ctx, stored); err != nil {
		// The refreshed token still works for this request.
		utils.GetLogger().Warn("persisting refreshed token failed",
			zap.String("authId", stored.AuthID), zap.Error(err))
	}
	return refreshed, nil
}

func (c *GoogleMeetClient) service(ctx context.Context, stored *models.IntegrationToken) (*calendar.Service, error) {
	token, err := c.freshToken(ctx, stored)
	if err != nil {
		return nil, err
	}
	return calendar.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
}

// CreateMeeting inserts a calendar event with an attached Meet conference and
// returns the join URL plus the event id for later teardown.
func (c *GoogleMeetClient) CreateMeeting(ctx context.Context, stored *models.IntegrationToken, title string, start, end time.Time, requestID string) (string, string, error) {
	srv, err := c.service(ctx, stored)
	if err != nil {
		return "", "", err
	}

	event := &calendar.Event{
		Summary: title,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             requestID,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := srv.Events.Insert("primary", event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("inserting calendar event: %w", err)
	}

	url := created.HangoutLink
	if url == "" && created.ConferenceData != nil {
		for _, entry := range created.ConferenceData.EntryPoints {
			if entry.EntryPointType == "video" {
				url = entry.Uri
				break
			}
		}
	}
	if url == "" {
		return "", "", fmt.Errorf("event %s created without a conference link", created.Id)
	}
	return url, created.Id, nil
}

// DeleteEvent removes the calendar event backing a cancelled appointment. An
// event already deleted remotely counts as success.
func (c *GoogleMeetClient) DeleteEvent(ctx context.Context, stored *models.IntegrationToken, eventID string) error {
	srv, err := c.service(ctx, stored)
	if err != nil {
		return err
	}

	err = srv.Events.Delete("primary", eventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			return nil
		}
		return fmt.Errorf("deleting calendar event %s: %w", eventID, err)
	}
	return nil
}
