package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/internal/usecase"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/correlation"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One metrics instance per test binary; promauto registers globally.
var testMetrics = metrics.NewMetrics("fis_webhook_test")

// stubFactory returns canned usecase handlers so the HTTP layer is tested in
// isolation
type stubFactory struct {
	reader  usecase.FlightReader
	updater usecase.StatusUpdater
	creator usecase.AirportCreator
	syncer  usecase.FlightSyncer
}

func (f *stubFactory) FlightReader() usecase.FlightReader     { return f.reader }
func (f *stubFactory) StatusUpdater() usecase.StatusUpdater   { return f.updater }
func (f *stubFactory) AirportCreator() usecase.AirportCreator { return f.creator }
func (f *stubFactory) FlightSyncer() usecase.FlightSyncer     { return f.syncer }

type stubSyncer struct {
	flight *entity.Flight
	err    error
	input  *usecase.FlightSyncInput
}

func (s *stubSyncer) SyncFlight(_ context.Context, input *usecase.FlightSyncInput) (*entity.Flight, error) {
	s.input = input
	return s.flight, s.err
}

type stubCreator struct {
	airport *entity.Airport
	err     error
}

func (s *stubCreator) SyncAirport(_ context.Context, _ *usecase.AirportSyncInput) (*entity.Airport, error) {
	return s.airport, s.err
}

type stubReader struct {
	flight *entity.Flight
	events []entity.FlightEvent
	err    error
}

func (s *stubReader) GetFlight(_ context.Context, _ uint) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubReader) GetFlightByNumber(_ context.Context, _ string) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubReader) GetFlightEvents(_ context.Context, _ uint) ([]entity.FlightEvent, error) {
	return s.events, s.err
}

type stubUpdater struct {
	flight *entity.Flight
	err    error
}

func (s *stubUpdater) UpdateStatus(_ context.Context, _ *usecase.StatusUpdateInput) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubUpdater) UpdateGate(_ context.Context, _, _ uint) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubUpdater) UpdateBaggageClaim(_ context.Context, _, _ uint) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubUpdater) UpdateTime(_ context.Context, _ uint, _ string, _ time.Time) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubUpdater) NotifyActualDeparture(_ context.Context, _ uint, _ time.Time) (*entity.Flight, error) {
	return s.flight, s.err
}

func (s *stubUpdater) NotifyActualArrival(_ context.Context, _ uint, _ time.Time) (*entity.Flight, error) {
	return s.flight, s.err
}

// fakeArchive records archived payloads in memory
type fakeArchive struct {
	payloads []entity.InboundPayload
	err      error
}

func (a *fakeArchive) Archive(_ context.Context, payload *entity.InboundPayload) error {
	if a.err != nil {
		return a.err
	}
	a.payloads = append(a.payloads, *payload)
	return nil
}

func newTestServer(factory *stubFactory, archive *fakeArchive) http.Handler {
	// Pass a true nil interface when no stub is supplied; a typed-nil
	// *fakeArchive would defeat the handler's archive == nil check.
	var repo repository.PayloadArchiveRepository
	if archive != nil {
		repo = archive
	}
	h := NewHandler(factory, repo, testMetrics, logger.NewNopLogger())
	return NewRouter(h, logger.NewNopLogger())
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestSyncFlightWebhook(t *testing.T) {
	syncer := &stubSyncer{flight: &entity.Flight{ID: 7, Number: "PR404", StatusCode: "SCHEDULED"}}
	router := newTestServer(&stubFactory{syncer: syncer}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_number":"PR404","origin_code":"MNL"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	require.NotNil(t, syncer.input)
	require.NotNil(t, syncer.input.FlightNumber)
	assert.Equal(t, "PR404", *syncer.input.FlightNumber)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var flight FlightResponse
	require.NoError(t, json.Unmarshal(data, &flight))
	assert.Equal(t, uint(7), flight.ID)
	assert.Equal(t, "SCHEDULED", flight.StatusCode)
}

func TestSyncFlightWebhookAcceptsNumericStringID(t *testing.T) {
	syncer := &stubSyncer{flight: &entity.Flight{ID: 7, Number: "PR404", StatusCode: "SCHEDULED"}}
	router := newTestServer(&stubFactory{syncer: syncer}, nil)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_id":"7"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, syncer.input.FlightID)
	assert.EqualValues(t, 7, *syncer.input.FlightID)
}

func TestSyncFlightWebhookInvalidJSON(t *testing.T) {
	router := newTestServer(&stubFactory{syncer: &stubSyncer{}}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_number":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, string(apperrors.ErrorTypeValidation), envelope.Error.Type)
}

func TestSyncFlightWebhookMissingIdentifier(t *testing.T) {
	syncer := &stubSyncer{err: apperrors.NewInvalidIdentifierError("flight_id or flight_number")}
	router := newTestServer(&stubFactory{syncer: syncer}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"origin_code":"MNL"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "flight_id or flight_number")
}

func TestCorrelationIDEchoedWhenSupplied(t *testing.T) {
	syncer := &stubSyncer{flight: &entity.Flight{ID: 1, Number: "PR404"}}
	router := newTestServer(&stubFactory{syncer: syncer}, nil)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_number":"PR404"}`, map[string]string{correlation.HeaderName: "corr-abc"})

	assert.Equal(t, "corr-abc", rec.Header().Get(correlation.HeaderName))
}

func TestCorrelationIDGeneratedWhenAbsent(t *testing.T) {
	syncer := &stubSyncer{flight: &entity.Flight{ID: 1, Number: "PR404"}}
	router := newTestServer(&stubFactory{syncer: syncer}, nil)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_number":"PR404"}`, nil)

	assert.NotEmpty(t, rec.Header().Get(correlation.HeaderName))
}

func TestUpdateStatusWebhookNotFound(t *testing.T) {
	updater := &stubUpdater{err: apperrors.NewNotFoundError("flight not found")}
	router := newTestServer(&stubFactory{updater: updater}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/status",
		`{"flight_id":99,"status_code":"DELAYED"}`, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, string(apperrors.ErrorTypeNotFound), envelope.Error.Type)
}

func TestUpdateStatusWebhookInternalErrorIsGeneric(t *testing.T) {
	updater := &stubUpdater{err: errors.New("pq: connection refused")}
	router := newTestServer(&stubFactory{updater: updater}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/status",
		`{"flight_id":1,"status_code":"DELAYED"}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "internal server error", envelope.Error.Message)
	assert.NotContains(t, envelope.Error.Message, "pq:")
}

func TestSyncAirportWebhook(t *testing.T) {
	creator := &stubCreator{airport: &entity.Airport{ID: 3, IATACode: "MNL", Name: "Ninoy Aquino Intl"}}
	router := newTestServer(&stubFactory{creator: creator}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/airports/sync",
		`{"iata_code":"MNL","name":"Ninoy Aquino Intl"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Message, "MNL")
}

func TestWebhookArchivesInboundPayload(t *testing.T) {
	archive := &fakeArchive{}
	syncer := &stubSyncer{flight: &entity.Flight{ID: 1, Number: "PR404"}}
	router := newTestServer(&stubFactory{syncer: syncer}, archive)

	doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_number":"PR404","extra_key":"ignored"}`, map[string]string{correlation.HeaderName: "corr-7"})

	require.Len(t, archive.payloads, 1)
	assert.Equal(t, entity.PayloadKindFlightSync, archive.payloads[0].Kind)
	assert.Equal(t, "corr-7", archive.payloads[0].CorrelationID)
	assert.Equal(t, "PR404", archive.payloads[0].Body["flight_number"])
}

func TestWebhookArchiveFailureDoesNotFailRequest(t *testing.T) {
	archive := &fakeArchive{err: errors.New("mongo down")}
	syncer := &stubSyncer{flight: &entity.Flight{ID: 1, Number: "PR404"}}
	router := newTestServer(&stubFactory{syncer: syncer}, archive)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/webhooks/flights/sync",
		`{"flight_number":"PR404"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}

func TestGetFlight(t *testing.T) {
	departure := time.Date(2025, 11, 12, 8, 0, 0, 0, time.UTC)
	reader := &stubReader{flight: &entity.Flight{
		ID:                 7,
		Number:             "PR404",
		StatusCode:         "SCHEDULED",
		ScheduledDeparture: &departure,
		Gate:               &entity.Gate{ID: 5, Number: "B12", Terminal: "2"},
	}}
	router := newTestServer(&stubFactory{reader: reader}, nil)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/flights/7", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var flight FlightResponse
	require.NoError(t, json.Unmarshal(data, &flight))
	assert.Equal(t, "PR404", flight.Number)
	require.NotNil(t, flight.ScheduledDeparture)
	assert.Equal(t, "2025-11-12 08:00:00", *flight.ScheduledDeparture)
	require.NotNil(t, flight.Gate)
	assert.Equal(t, "B12", flight.Gate.Number)
}

func TestGetFlightInvalidID(t *testing.T) {
	router := newTestServer(&stubFactory{reader: &stubReader{}}, nil)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/flights/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, string(apperrors.ErrorTypeValidation), envelope.Error.Type)
}

func TestGetFlightEvents(t *testing.T) {
	old := "SCHEDULED"
	reader := &stubReader{events: []entity.FlightEvent{
		{ID: 1, EventType: entity.EventStatusChange, OldValue: &old, NewValue: "DELAYED"},
	}}
	router := newTestServer(&stubFactory{reader: reader}, nil)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/v1/flights/7/events", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var events []EventResponse
	require.NoError(t, json.Unmarshal(data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventStatusChange, events[0].EventType)
	assert.Equal(t, "DELAYED", events[0].NewValue)
}

func TestAssignGateRestrictedConflict(t *testing.T) {
	updater := &stubUpdater{err: apperrors.NewRestrictedAssignmentError("B12", "A380")}
	router := newTestServer(&stubFactory{updater: updater}, nil)

	rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/flights/7/gate",
		`{"gate_id":5}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, string(apperrors.ErrorTypeRestricted), envelope.Error.Type)
	assert.Contains(t, envelope.Error.Message, "B12")
	assert.Contains(t, envelope.Error.Message, "A380")
}

func TestAssignGateMissingID(t *testing.T) {
	router := newTestServer(&stubFactory{updater: &stubUpdater{}}, nil)

	rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/flights/7/gate", `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "gate_id")
}

func TestUpdateTimeBadValue(t *testing.T) {
	router := newTestServer(&stubFactory{updater: &stubUpdater{}}, nil)

	rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/flights/7/times",
		`{"field":"scheduled_departure","value":"not a time"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Message, "invalid value")
}

func TestUpdateTimeRejectsActualFields(t *testing.T) {
	updater := &stubUpdater{flight: &entity.Flight{ID: 7, Number: "PR404"}}
	router := newTestServer(&stubFactory{updater: updater}, nil)

	for _, field := range []string{"actual_departure", "actual_arrival", "", "boarding_time"} {
		rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/flights/7/times",
			`{"field":"`+field+`","value":"2025-11-12 09:15:00"}`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code, field)
		require.NotNil(t, envelope.Error, field)
		assert.Contains(t, envelope.Error.Message, "scheduled_departure or scheduled_arrival", field)
	}
}

func TestUpdateTimeScheduledFieldAccepted(t *testing.T) {
	updater := &stubUpdater{flight: &entity.Flight{ID: 7, Number: "PR404", StatusCode: "SCHEDULED"}}
	router := newTestServer(&stubFactory{updater: updater}, nil)

	rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/flights/7/times",
		`{"field":"scheduled_arrival","value":"2025-11-12 12:30:00"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
}

func TestRecordDepartureDefaultsToNow(t *testing.T) {
	updater := &stubUpdater{flight: &entity.Flight{ID: 7, Number: "PR404", StatusCode: "DEPARTED"}}
	router := newTestServer(&stubFactory{updater: updater}, nil)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/flights/7/departure", `{}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Message, "departure recorded")
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(&stubFactory{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}
