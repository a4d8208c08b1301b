// Package webhook provides the HTTP layer of the flight information service:
// inbound webhook endpoints for the integration hub and the admin API that
// drives gate, baggage claim, time, and status changes directly. Handlers are
// thin dispatch only; all domain logic lives in the usecase handlers obtained
// from the factory.
package webhook

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/internal/usecase"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/correlation"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/metrics"
)

// maxPayloadBytes caps inbound webhook bodies
const maxPayloadBytes = 1 << 20

// Handler holds the HTTP handlers for webhook and admin endpoints
type Handler struct {
	factory usecase.HandlerFactory
	archive repository.PayloadArchiveRepository
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewHandler creates a new HTTP handler set. archive may be nil, in which
// case inbound payloads are not archived.
func NewHandler(
	factory usecase.HandlerFactory,
	archive repository.PayloadArchiveRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *Handler {
	return &Handler{
		factory: factory,
		archive: archive,
		metrics: m,
		logger:  logger,
	}
}

// SyncFlight handles POST /api/v1/webhooks/flights/sync
func (h *Handler) SyncFlight(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	var input usecase.FlightSyncInput
	if err := h.decodePayload(r, entity.PayloadKindFlightSync, &input); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	flight, err := h.factory.FlightSyncer().SyncFlight(r.Context(), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.WebhooksProcessed.WithLabelValues(entity.PayloadKindFlightSync).Inc()
	writeSuccess(w, http.StatusOK, fmt.Sprintf("flight %d synced", flight.ID), toFlightResponse(flight))
}

// UpdateStatus handles POST /api/v1/webhooks/flights/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	var input usecase.StatusUpdateInput
	if err := h.decodePayload(r, entity.PayloadKindStatusUpdate, &input); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	flight, err := h.factory.StatusUpdater().UpdateStatus(r.Context(), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.WebhooksProcessed.WithLabelValues(entity.PayloadKindStatusUpdate).Inc()
	writeSuccess(w, http.StatusOK, fmt.Sprintf("flight %d status is %s", flight.ID, flight.StatusCode), toFlightResponse(flight))
}

// SyncAirport handles POST /api/v1/webhooks/airports/sync
func (h *Handler) SyncAirport(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	var input usecase.AirportSyncInput
	if err := h.decodePayload(r, entity.PayloadKindAirportSync, &input); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	airport, err := h.factory.AirportCreator().SyncAirport(r.Context(), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.WebhooksProcessed.WithLabelValues(entity.PayloadKindAirportSync).Inc()
	writeSuccess(w, http.StatusOK, fmt.Sprintf("airport %s synced", airport.IATACode), toAirportResponse(airport))
}

// decodePayload reads the body once, archives the raw payload, and decodes
// the typed input. Unrecognized keys are dropped by the JSON decoder.
func (h *Handler) decodePayload(r *http.Request, kind string, input interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		return apperrors.NewValidationError("unable to read request body")
	}

	h.archivePayload(r, kind, body)

	if err := json.Unmarshal(body, input); err != nil {
		return apperrors.NewValidationError("invalid JSON payload")
	}
	return nil
}

// archivePayload stores the raw inbound payload best-effort. Failures are
// logged and never fail the request.
func (h *Handler) archivePayload(r *http.Request, kind string, body []byte) {
	if h.archive == nil {
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return
	}

	payload := &entity.InboundPayload{
		Kind:          kind,
		CorrelationID: correlation.FromContext(r.Context()),
		Body:          raw,
	}
	if err := h.archive.Archive(r.Context(), payload); err != nil {
		h.logger.Warn("Failed to archive inbound payload",
			"kind", kind,
			"correlationId", payload.CorrelationID,
			"error", err)
	}
}

func (h *Handler) observe(start time.Time) {
	h.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
}
