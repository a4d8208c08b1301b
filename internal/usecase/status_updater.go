package usecase

import (
	"context"
	"fmt"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/correlation"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/metrics"
	"flightinfo-service/pkg/utils"
)

// StatusUpdater detects meaningful flight state changes, records one audit
// event per real change, and relays each change to the integration hub.
// No-op updates (new value equals current) succeed without an event or a
// notification. The persisted change is the source of truth: a notification
// delivery failure is logged and counted but never rolls anything back.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, input *StatusUpdateInput) (*entity.Flight, error)
	UpdateGate(ctx context.Context, flightID uint, gateID uint) (*entity.Flight, error)
	UpdateBaggageClaim(ctx context.Context, flightID uint, claimID uint) (*entity.Flight, error)
	UpdateTime(ctx context.Context, flightID uint, field string, value time.Time) (*entity.Flight, error)
	NotifyActualDeparture(ctx context.Context, flightID uint, actualTime time.Time) (*entity.Flight, error)
	NotifyActualArrival(ctx context.Context, flightID uint, actualTime time.Time) (*entity.Flight, error)
}

type statusUpdater struct {
	flightRepo  repository.FlightRepository
	gateRepo    repository.GateRepository
	claimRepo   repository.BaggageClaimRepository
	hubRepo     repository.HubRepository
	statusCodes []string
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewStatusUpdater creates a new status updater. statusCodes is the
// externally configured status vocabulary; an empty list accepts any code.
func NewStatusUpdater(
	flightRepo repository.FlightRepository,
	gateRepo repository.GateRepository,
	claimRepo repository.BaggageClaimRepository,
	hubRepo repository.HubRepository,
	statusCodes []string,
	m *metrics.Metrics,
	logger logger.Logger,
) StatusUpdater {
	return &statusUpdater{
		flightRepo:  flightRepo,
		gateRepo:    gateRepo,
		claimRepo:   claimRepo,
		hubRepo:     hubRepo,
		statusCodes: statusCodes,
		metrics:     m,
		logger:      logger,
	}
}

// UpdateStatus compares the payload's status code against the flight's
// current one. Equal codes are a successful no-op. A differing code is
// persisted together with one STATUS_CHANGE event, then relayed to the hub.
// Transitions are unrestricted: any status may move to any other.
func (u *statusUpdater) UpdateStatus(ctx context.Context, input *StatusUpdateInput) (*entity.Flight, error) {
	identifier, err := ResolveFlightIdentifier(input.FlightID, input.FlightNumber)
	if err != nil {
		return nil, err
	}

	flight, err := u.loadFlight(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if input.StatusCode == nil {
		return flight, nil
	}
	newCode := utils.NormalizeCode(*input.StatusCode)
	if newCode == "" || newCode == flight.StatusCode {
		return flight, nil
	}
	if err := u.validateStatusCode(newCode); err != nil {
		return nil, err
	}

	oldCode := flight.StatusCode
	flight.StatusCode = newCode

	event := u.newEvent(flight, entity.EventStatusChange, "", optional(oldCode), newCode)
	if err := u.flightRepo.UpdateWithEvent(ctx, flight, event); err != nil {
		u.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		u.logger.Error("Failed to persist status change",
			"flightId", flight.ID,
			"error", err)
		return nil, err
	}
	u.metrics.EventsRecorded.WithLabelValues(entity.EventStatusChange).Inc()

	u.dispatch(ctx, u.hubRepo.NotifyStatusChange, u.buildNotification(flight, event))

	u.logger.Info("Flight status changed",
		"flightId", flight.ID,
		"oldStatus", oldCode,
		"newStatus", newCode)

	return flight, nil
}

// UpdateGate assigns a gate to a flight. The gate's aircraft restriction set
// is a hard precondition checked before any persistence or event. Assigning
// the already-assigned gate is a successful no-op.
func (u *statusUpdater) UpdateGate(ctx context.Context, flightID uint, gateID uint) (*entity.Flight, error) {
	flight, err := u.loadFlight(ctx, FlightIdentifier{ID: flightID})
	if err != nil {
		return nil, err
	}

	gate, err := u.gateRepo.FindByID(ctx, gateID)
	if err != nil {
		return nil, err
	}
	if gate == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("gate %d not found", gateID))
	}

	if gate.IsRestrictedFor(flight.AircraftType) {
		return nil, apperrors.NewRestrictedAssignmentError(gate.Number, flight.AircraftType)
	}

	if flight.GateID() == gate.ID {
		return flight, nil
	}

	var oldValue *string
	if flight.Gate != nil {
		oldValue = optional(flight.Gate.Number)
	}
	flight.Gate = gate

	event := u.newEvent(flight, entity.EventGateChange, "", oldValue, gate.Number)
	if err := u.flightRepo.UpdateWithEvent(ctx, flight, event); err != nil {
		u.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		u.logger.Error("Failed to persist gate change",
			"flightId", flight.ID,
			"gateId", gate.ID,
			"error", err)
		return nil, err
	}
	u.metrics.EventsRecorded.WithLabelValues(entity.EventGateChange).Inc()

	u.dispatch(ctx, u.hubRepo.NotifyGateChange, u.buildNotification(flight, event))

	u.logger.Info("Gate assigned",
		"flightId", flight.ID,
		"gate", gate.Number)

	return flight, nil
}

// UpdateBaggageClaim assigns a baggage claim to a flight, same shape as the
// gate path but without a restriction precondition
func (u *statusUpdater) UpdateBaggageClaim(ctx context.Context, flightID uint, claimID uint) (*entity.Flight, error) {
	flight, err := u.loadFlight(ctx, FlightIdentifier{ID: flightID})
	if err != nil {
		return nil, err
	}

	claim, err := u.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("baggage claim %d not found", claimID))
	}

	if flight.BaggageClaimID() == claim.ID {
		return flight, nil
	}

	var oldValue *string
	if flight.BaggageClaim != nil {
		oldValue = optional(flight.BaggageClaim.Number)
	}
	flight.BaggageClaim = claim

	event := u.newEvent(flight, entity.EventBaggageChange, "", oldValue, claim.Number)
	if err := u.flightRepo.UpdateWithEvent(ctx, flight, event); err != nil {
		u.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		u.logger.Error("Failed to persist baggage claim change",
			"flightId", flight.ID,
			"claimId", claim.ID,
			"error", err)
		return nil, err
	}
	u.metrics.EventsRecorded.WithLabelValues(entity.EventBaggageChange).Inc()

	u.dispatch(ctx, u.hubRepo.NotifyBaggageChange, u.buildNotification(flight, event))

	u.logger.Info("Baggage claim assigned",
		"flightId", flight.ID,
		"claim", claim.Number)

	return flight, nil
}

// UpdateTime updates one of the flight's time fields. An unchanged value is a
// successful no-op; a changed one is persisted with a TIME_UPDATE event
// naming the field and carrying the old and new values.
func (u *statusUpdater) UpdateTime(ctx context.Context, flightID uint, field string, value time.Time) (*entity.Flight, error) {
	flight, err := u.loadFlight(ctx, FlightIdentifier{ID: flightID})
	if err != nil {
		return nil, err
	}

	current, err := flight.TimeValue(field)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	newValue := utils.FormatTimestamp(value)
	var oldValue *string
	if current != nil {
		formatted := utils.FormatTimestamp(*current)
		if formatted == newValue {
			return flight, nil
		}
		oldValue = &formatted
	}

	if err := flight.SetTimeValue(field, value); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	event := u.newEvent(flight, entity.EventTimeUpdate, field, oldValue, newValue)
	if err := u.flightRepo.UpdateWithEvent(ctx, flight, event); err != nil {
		u.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		u.logger.Error("Failed to persist time update",
			"flightId", flight.ID,
			"field", field,
			"error", err)
		return nil, err
	}
	u.metrics.EventsRecorded.WithLabelValues(entity.EventTimeUpdate).Inc()

	u.dispatch(ctx, u.hubRepo.NotifyTimeUpdate, u.buildNotification(flight, event))

	u.logger.Info("Flight time updated",
		"flightId", flight.ID,
		"field", field,
		"newValue", newValue)

	return flight, nil
}

// NotifyActualDeparture records the actual departure time. Every invocation
// appends exactly one DEPARTURE event; callers invoke it once per transition.
func (u *statusUpdater) NotifyActualDeparture(ctx context.Context, flightID uint, actualTime time.Time) (*entity.Flight, error) {
	return u.recordActualTime(ctx, flightID, entity.TimeFieldActualDeparture,
		entity.EventDeparture, u.hubRepo.NotifyDeparture, actualTime)
}

// NotifyActualArrival records the actual arrival time, appending exactly one
// ARRIVAL event per invocation
func (u *statusUpdater) NotifyActualArrival(ctx context.Context, flightID uint, actualTime time.Time) (*entity.Flight, error) {
	return u.recordActualTime(ctx, flightID, entity.TimeFieldActualArrival,
		entity.EventArrival, u.hubRepo.NotifyArrival, actualTime)
}

func (u *statusUpdater) recordActualTime(
	ctx context.Context,
	flightID uint,
	field string,
	eventType string,
	notify func(context.Context, *entity.HubNotification) error,
	actualTime time.Time,
) (*entity.Flight, error) {
	flight, err := u.loadFlight(ctx, FlightIdentifier{ID: flightID})
	if err != nil {
		return nil, err
	}

	current, err := flight.TimeValue(field)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var oldValue *string
	if current != nil {
		formatted := utils.FormatTimestamp(*current)
		oldValue = &formatted
	}

	if err := flight.SetTimeValue(field, actualTime); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	event := u.newEvent(flight, eventType, field, oldValue, utils.FormatTimestamp(actualTime))
	if err := u.flightRepo.UpdateWithEvent(ctx, flight, event); err != nil {
		u.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		u.logger.Error("Failed to persist actual time",
			"flightId", flight.ID,
			"field", field,
			"error", err)
		return nil, err
	}
	u.metrics.EventsRecorded.WithLabelValues(eventType).Inc()

	u.dispatch(ctx, notify, u.buildNotification(flight, event))

	u.logger.Info("Actual time recorded",
		"flightId", flight.ID,
		"field", field)

	return flight, nil
}

func (u *statusUpdater) loadFlight(ctx context.Context, identifier FlightIdentifier) (*entity.Flight, error) {
	var flight *entity.Flight
	var err error
	if identifier.ByID() {
		flight, err = u.flightRepo.FindByID(ctx, identifier.ID)
	} else {
		flight, err = u.flightRepo.FindByNumber(ctx, identifier.Number)
	}
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, apperrors.NewNotFoundError("flight not found")
	}
	return flight, nil
}

// validateStatusCode rejects codes outside the configured vocabulary. An
// empty vocabulary accepts anything.
func (u *statusUpdater) validateStatusCode(code string) error {
	if len(u.statusCodes) == 0 {
		return nil
	}
	for _, known := range u.statusCodes {
		if known == code {
			return nil
		}
	}
	return apperrors.NewValidationError(fmt.Sprintf("unknown status_code: %s", code))
}

func (u *statusUpdater) newEvent(flight *entity.Flight, eventType, field string, oldValue *string, newValue string) *entity.FlightEvent {
	return &entity.FlightEvent{
		FlightID:  flight.ID,
		EventType: eventType,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
	}
}

func (u *statusUpdater) buildNotification(flight *entity.Flight, event *entity.FlightEvent) *entity.HubNotification {
	occurredAt := event.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return &entity.HubNotification{
		FlightID:     flight.ID,
		FlightNumber: flight.Number,
		EventType:    event.EventType,
		Field:        event.Field,
		OldValue:     event.OldValue,
		NewValue:     event.NewValue,
		OccurredAt:   occurredAt,
	}
}

// dispatch relays one notification to the hub after the change is committed.
// Failures are logged and counted only: the persisted change stands.
func (u *statusUpdater) dispatch(ctx context.Context, notify func(context.Context, *entity.HubNotification) error, notification *entity.HubNotification) {
	notification.CorrelationID = correlation.FromContext(ctx)

	if err := notify(ctx, notification); err != nil {
		u.metrics.NotificationFailures.WithLabelValues(notification.EventType).Inc()
		u.logger.Error("Hub notification delivery failed",
			"eventType", notification.EventType,
			"flightId", notification.FlightID,
			"correlationId", notification.CorrelationID,
			"error", err)
		return
	}
	u.metrics.NotificationsSent.WithLabelValues(notification.EventType).Inc()
}

// optional returns a pointer to s, or nil when s is empty
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
