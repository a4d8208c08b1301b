package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/correlation"
	"flightinfo-service/pkg/logger"

	"golang.org/x/oauth2/clientcredentials"
)

// HubEndpoints resolves the outbound endpoint for an event category. It is
// consulted on every dispatch, so configuration changes take effect on the
// next notification without a restart.
type HubEndpoints interface {
	EndpointFor(category string) string
}

// HubAuth carries the credentials used to authenticate against the
// integration hub. When ClientID is set, OAuth2 client credentials are used;
// otherwise BearerToken, if present, is sent as-is.
type HubAuth struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	BearerToken  string
}

// HubHTTPRepository sends notifications to the integration hub over HTTP
type HubHTTPRepository struct {
	logger      logger.Logger
	endpoints   HubEndpoints
	bearerToken string
	oauthConfig *clientcredentials.Config
}

// NewHubHTTPRepository creates a new hub notification repository. No network
// calls happen here; tokens are fetched lazily on first dispatch.
func NewHubHTTPRepository(endpoints HubEndpoints, auth HubAuth, logger logger.Logger) repository.HubRepository {
	repo := &HubHTTPRepository{
		logger:      logger,
		endpoints:   endpoints,
		bearerToken: auth.BearerToken,
	}

	if auth.ClientID != "" {
		repo.oauthConfig = &clientcredentials.Config{
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			TokenURL:     auth.TokenURL,
		}
	}

	return repo
}

// NotifyStatusChange sends a status-change notification
func (r *HubHTTPRepository) NotifyStatusChange(ctx context.Context, notification *entity.HubNotification) error {
	return r.post(ctx, entity.EventStatusChange, notification)
}

// NotifyGateChange sends a gate-change notification
func (r *HubHTTPRepository) NotifyGateChange(ctx context.Context, notification *entity.HubNotification) error {
	return r.post(ctx, entity.EventGateChange, notification)
}

// NotifyBaggageChange sends a baggage-claim-change notification
func (r *HubHTTPRepository) NotifyBaggageChange(ctx context.Context, notification *entity.HubNotification) error {
	return r.post(ctx, entity.EventBaggageChange, notification)
}

// NotifyTimeUpdate sends a time-update notification
func (r *HubHTTPRepository) NotifyTimeUpdate(ctx context.Context, notification *entity.HubNotification) error {
	return r.post(ctx, entity.EventTimeUpdate, notification)
}

// NotifyDeparture sends an actual-departure notification
func (r *HubHTTPRepository) NotifyDeparture(ctx context.Context, notification *entity.HubNotification) error {
	return r.post(ctx, entity.EventDeparture, notification)
}

// NotifyArrival sends an actual-arrival notification
func (r *HubHTTPRepository) NotifyArrival(ctx context.Context, notification *entity.HubNotification) error {
	return r.post(ctx, entity.EventArrival, notification)
}

// post dispatches one notification to the endpoint registered for the
// category. The endpoint is resolved at dispatch time, not cached.
func (r *HubHTTPRepository) post(ctx context.Context, category string, notification *entity.HubNotification) error {
	url := r.endpoints.EndpointFor(category)
	if url == "" {
		return fmt.Errorf("no hub endpoint configured for category %s", category)
	}

	if notification.CorrelationID == "" {
		notification.CorrelationID = correlation.FromContext(ctx)
	}

	jsonData, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if notification.CorrelationID != "" {
		req.Header.Set(correlation.HeaderName, notification.CorrelationID)
	}
	if r.oauthConfig == nil && r.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	}

	client := r.httpClient(ctx)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errorBody map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&errorBody); err != nil || len(errorBody) == 0 {
			return fmt.Errorf("hub returned status %d for category %s", resp.StatusCode, category)
		}
		return fmt.Errorf("hub returned status %d for category %s: %v", resp.StatusCode, category, errorBody)
	}

	r.logger.Info("Notification delivered to hub",
		"category", category,
		"flightId", notification.FlightID,
		"correlationId", notification.CorrelationID)

	return nil
}

// httpClient returns the client used for one dispatch. The OAuth2 client
// handles token acquisition and refresh internally.
func (r *HubHTTPRepository) httpClient(ctx context.Context) *http.Client {
	if r.oauthConfig != nil {
		return r.oauthConfig.Client(ctx)
	}
	return &http.Client{Timeout: 30 * time.Second}
}
