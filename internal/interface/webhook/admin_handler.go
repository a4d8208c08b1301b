package webhook

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// Admin request bodies. The admin frontend drives the same change detection
// core as the webhooks, skipping the inbound payload step.

type assignGateRequest struct {
	GateID utils.FlexID `json:"gate_id"`
}

type assignBaggageClaimRequest struct {
	BaggageClaimID utils.FlexID `json:"baggage_claim_id"`
}

type updateTimeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type actualTimeRequest struct {
	ActualTime *string `json:"actual_time"`
}

// GetFlight handles GET /api/v1/flights/{flightID}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flightID, err := h.flightID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	flight, err := h.factory.FlightReader().GetFlight(r.Context(), flightID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", toFlightResponse(flight))
}

// GetFlightEvents handles GET /api/v1/flights/{flightID}/events
func (h *Handler) GetFlightEvents(w http.ResponseWriter, r *http.Request) {
	flightID, err := h.flightID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	events, err := h.factory.FlightReader().GetFlightEvents(r.Context(), flightID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", toEventResponses(events))
}

// AssignGate handles PUT /api/v1/flights/{flightID}/gate
func (h *Handler) AssignGate(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	flightID, err := h.flightID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req assignGateRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.GateID == 0 {
		writeError(w, r, h.logger, apperrors.NewValidationError("missing or empty identifier: gate_id"))
		return
	}

	flight, err := h.factory.StatusUpdater().UpdateGate(r.Context(), flightID, uint(req.GateID))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "gate assigned", toFlightResponse(flight))
}

// AssignBaggageClaim handles PUT /api/v1/flights/{flightID}/baggage-claim
func (h *Handler) AssignBaggageClaim(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	flightID, err := h.flightID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req assignBaggageClaimRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.BaggageClaimID == 0 {
		writeError(w, r, h.logger, apperrors.NewValidationError("missing or empty identifier: baggage_claim_id"))
		return
	}

	flight, err := h.factory.StatusUpdater().UpdateBaggageClaim(r.Context(), flightID, uint(req.BaggageClaimID))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "baggage claim assigned", toFlightResponse(flight))
}

// UpdateTime handles PUT /api/v1/flights/{flightID}/times
func (h *Handler) UpdateTime(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	flightID, err := h.flightID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req updateTimeRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	// Actual times go through the departure/arrival endpoints, which record
	// their own one-shot event types
	if req.Field != entity.TimeFieldScheduledDeparture && req.Field != entity.TimeFieldScheduledArrival {
		writeError(w, r, h.logger, apperrors.NewValidationError(
			"field must be scheduled_departure or scheduled_arrival"))
		return
	}

	value, err := utils.ParseTimestamp(req.Value)
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("invalid value: "+err.Error()))
		return
	}

	flight, err := h.factory.StatusUpdater().UpdateTime(r.Context(), flightID, req.Field, value)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "time updated", toFlightResponse(flight))
}

// RecordDeparture handles POST /api/v1/flights/{flightID}/departure
func (h *Handler) RecordDeparture(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	h.recordActualTime(w, r, func(flightID uint, actualTime time.Time) (interface{}, error) {
		flight, err := h.factory.StatusUpdater().NotifyActualDeparture(r.Context(), flightID, actualTime)
		if err != nil {
			return nil, err
		}
		return toFlightResponse(flight), nil
	}, "departure recorded")
}

// RecordArrival handles POST /api/v1/flights/{flightID}/arrival
func (h *Handler) RecordArrival(w http.ResponseWriter, r *http.Request) {
	defer h.observe(time.Now())

	h.recordActualTime(w, r, func(flightID uint, actualTime time.Time) (interface{}, error) {
		flight, err := h.factory.StatusUpdater().NotifyActualArrival(r.Context(), flightID, actualTime)
		if err != nil {
			return nil, err
		}
		return toFlightResponse(flight), nil
	}, "arrival recorded")
}

func (h *Handler) recordActualTime(
	w http.ResponseWriter,
	r *http.Request,
	record func(flightID uint, actualTime time.Time) (interface{}, error),
	message string,
) {
	flightID, err := h.flightID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req actualTimeRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	actualTime := time.Now().UTC()
	if req.ActualTime != nil {
		parsed, err := utils.ParseTimestamp(*req.ActualTime)
		if err != nil {
			writeError(w, r, h.logger, apperrors.NewValidationError("invalid actual_time: "+err.Error()))
			return
		}
		actualTime = parsed
	}

	data, err := record(flightID, actualTime)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, message, data)
}

func (h *Handler) flightID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "flightID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid flight id: " + raw)
	}
	return uint(id), nil
}

func (h *Handler) decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxPayloadBytes)).Decode(v); err != nil {
		return apperrors.NewValidationError("invalid JSON payload")
	}
	return nil
}
