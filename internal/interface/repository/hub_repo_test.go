package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/pkg/correlation"
	"flightinfo-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticEndpoints maps every category to a fixed base URL
type staticEndpoints struct {
	base string
}

func (e staticEndpoints) EndpointFor(category string) string {
	if e.base == "" {
		return ""
	}
	return e.base + "/" + category
}

type receivedRequest struct {
	path          string
	correlationID string
	authorization string
	body          entity.HubNotification
}

func newHubServer(t *testing.T, status int) (*httptest.Server, *[]receivedRequest) {
	t.Helper()
	var received []receivedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body entity.HubNotification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received = append(received, receivedRequest{
			path:          r.URL.Path,
			correlationID: r.Header.Get(correlation.HeaderName),
			authorization: r.Header.Get("Authorization"),
			body:          body,
		})
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &received
}

func TestHubNotifyPostsToCategoryEndpoint(t *testing.T) {
	server, received := newHubServer(t, http.StatusOK)
	repo := NewHubHTTPRepository(staticEndpoints{base: server.URL}, HubAuth{}, logger.NewNopLogger())

	old := "SCHEDULED"
	notification := &entity.HubNotification{
		FlightID:     7,
		FlightNumber: "PR404",
		EventType:    entity.EventStatusChange,
		OldValue:     &old,
		NewValue:     "DELAYED",
		OccurredAt:   time.Now().UTC(),
	}
	ctx := correlation.WithID(context.Background(), "corr-123")
	require.NoError(t, repo.NotifyStatusChange(ctx, notification))

	require.Len(t, *received, 1)
	got := (*received)[0]
	assert.Equal(t, "/"+entity.EventStatusChange, got.path)
	assert.Equal(t, "corr-123", got.correlationID)
	assert.Equal(t, uint(7), got.body.FlightID)
	assert.Equal(t, "DELAYED", got.body.NewValue)
	assert.Equal(t, "corr-123", got.body.CorrelationID)
}

func TestHubNotifyEachCategoryHitsOwnPath(t *testing.T) {
	server, received := newHubServer(t, http.StatusOK)
	repo := NewHubHTTPRepository(staticEndpoints{base: server.URL}, HubAuth{}, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.NotifyGateChange(ctx, &entity.HubNotification{NewValue: "B12"}))
	require.NoError(t, repo.NotifyBaggageChange(ctx, &entity.HubNotification{NewValue: "C4"}))
	require.NoError(t, repo.NotifyTimeUpdate(ctx, &entity.HubNotification{NewValue: "2025-11-12 09:15:00"}))
	require.NoError(t, repo.NotifyDeparture(ctx, &entity.HubNotification{}))
	require.NoError(t, repo.NotifyArrival(ctx, &entity.HubNotification{}))

	require.Len(t, *received, 5)
	assert.Equal(t, "/"+entity.EventGateChange, (*received)[0].path)
	assert.Equal(t, "/"+entity.EventBaggageChange, (*received)[1].path)
	assert.Equal(t, "/"+entity.EventTimeUpdate, (*received)[2].path)
	assert.Equal(t, "/"+entity.EventDeparture, (*received)[3].path)
	assert.Equal(t, "/"+entity.EventArrival, (*received)[4].path)
}

func TestHubNotifyBearerToken(t *testing.T) {
	server, received := newHubServer(t, http.StatusOK)
	repo := NewHubHTTPRepository(staticEndpoints{base: server.URL},
		HubAuth{BearerToken: "secret-token"}, logger.NewNopLogger())

	require.NoError(t, repo.NotifyStatusChange(context.Background(), &entity.HubNotification{}))

	require.Len(t, *received, 1)
	assert.Equal(t, "Bearer secret-token", (*received)[0].authorization)
}

func TestHubNotifyNon2xxIsError(t *testing.T) {
	server, _ := newHubServer(t, http.StatusBadGateway)
	repo := NewHubHTTPRepository(staticEndpoints{base: server.URL}, HubAuth{}, logger.NewNopLogger())

	err := repo.NotifyStatusChange(context.Background(), &entity.HubNotification{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHubNotifyMalformedErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	t.Cleanup(server.Close)
	repo := NewHubHTTPRepository(staticEndpoints{base: server.URL}, HubAuth{}, logger.NewNopLogger())

	err := repo.NotifyStatusChange(context.Background(), &entity.HubNotification{})

	// A non-JSON error body falls back to the status line
	require.Error(t, err)
	assert.Contains(t, err.Error(), "504")
	assert.NotContains(t, err.Error(), "map[")
}

func TestHubNotifyMissingEndpointIsError(t *testing.T) {
	repo := NewHubHTTPRepository(staticEndpoints{}, HubAuth{}, logger.NewNopLogger())

	err := repo.NotifyStatusChange(context.Background(), &entity.HubNotification{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no hub endpoint configured")
}
