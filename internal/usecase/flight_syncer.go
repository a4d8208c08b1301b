package usecase

import (
	"context"
	"fmt"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/utils"
)

// FlightSyncer upserts flight records from inbound sync payloads
type FlightSyncer interface {
	SyncFlight(ctx context.Context, input *FlightSyncInput) (*entity.Flight, error)
}

type flightSyncer struct {
	flightRepo        repository.FlightRepository
	defaultStatusCode string
	logger            logger.Logger
}

// NewFlightSyncer creates a new flight syncer
func NewFlightSyncer(
	flightRepo repository.FlightRepository,
	defaultStatusCode string,
	logger logger.Logger,
) FlightSyncer {
	return &flightSyncer{
		flightRepo:        flightRepo,
		defaultStatusCode: defaultStatusCode,
		logger:            logger,
	}
}

// SyncFlight resolves the payload identifier, loads an existing flight or
// initializes a new one, applies only the fields present in the payload, and
// performs exactly one upsert write. Safe to call repeatedly with an identical
// payload: the second call yields the same final state and no extra writes of
// consequence.
func (s *flightSyncer) SyncFlight(ctx context.Context, input *FlightSyncInput) (*entity.Flight, error) {
	identifier, err := ResolveFlightIdentifier(input.FlightID, input.FlightNumber)
	if err != nil {
		return nil, err
	}

	flight, err := s.loadFlight(ctx, identifier)
	if err != nil {
		return nil, err
	}

	created := flight == nil
	if created {
		flight = &entity.Flight{
			ID:     identifier.ID,
			Number: identifier.Number,
		}
	}

	if err := s.applyFields(flight, input, created); err != nil {
		return nil, err
	}

	// Status is owned by the status-update path once a flight exists; on
	// creation the payload's code or the configured default seeds it.
	if created && flight.StatusCode == "" {
		flight.StatusCode = s.defaultStatusCode
	}

	if err := s.flightRepo.Upsert(ctx, flight); err != nil {
		s.logger.Error("Failed to upsert flight",
			"flightNumber", flight.Number,
			"error", err)
		return nil, err
	}

	s.logger.Info("Flight synced",
		"flightId", flight.ID,
		"flightNumber", flight.Number,
		"created", created)

	return flight, nil
}

func (s *flightSyncer) loadFlight(ctx context.Context, identifier FlightIdentifier) (*entity.Flight, error) {
	if identifier.ByID() {
		return s.flightRepo.FindByID(ctx, identifier.ID)
	}
	return s.flightRepo.FindByNumber(ctx, identifier.Number)
}

// applyFields copies the fields present in the payload onto the flight.
// Absent keys leave existing values untouched. The payload's status code is
// applied only on creation; existing flights change status through the
// status-update path.
func (s *flightSyncer) applyFields(flight *entity.Flight, input *FlightSyncInput, created bool) error {
	if input.FlightNumber != nil && *input.FlightNumber != "" {
		flight.Number = utils.NormalizeCode(*input.FlightNumber)
	}
	if input.AirlineCode != nil {
		flight.AirlineCode = utils.NormalizeCode(*input.AirlineCode)
	}
	if input.OriginCode != nil {
		flight.OriginCode = utils.NormalizeCode(*input.OriginCode)
	}
	if input.DestinationCode != nil {
		flight.DestinationCode = utils.NormalizeCode(*input.DestinationCode)
	}
	if input.AircraftType != nil {
		flight.AircraftType = utils.NormalizeCode(*input.AircraftType)
	}
	if input.ScheduledDeparture != nil {
		ts, err := utils.ParseTimestamp(*input.ScheduledDeparture)
		if err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("invalid scheduled_departure_time: %v", err))
		}
		flight.ScheduledDeparture = &ts
	}
	if input.ScheduledArrival != nil {
		ts, err := utils.ParseTimestamp(*input.ScheduledArrival)
		if err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("invalid scheduled_arrival_time: %v", err))
		}
		flight.ScheduledArrival = &ts
	}
	if input.StatusCode != nil && created {
		flight.StatusCode = utils.NormalizeCode(*input.StatusCode)
	}
	return nil
}
