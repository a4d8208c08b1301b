package usecase

import (
	"context"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/logger"
)

// AirportCreator upserts airport records from inbound sync payloads,
// idempotently keyed on IATA code
type AirportCreator interface {
	SyncAirport(ctx context.Context, input *AirportSyncInput) (*entity.Airport, error)
}

type airportCreator struct {
	airportRepo repository.AirportRepository
	logger      logger.Logger
}

// NewAirportCreator creates a new airport creator
func NewAirportCreator(airportRepo repository.AirportRepository, logger logger.Logger) AirportCreator {
	return &airportCreator{
		airportRepo: airportRepo,
		logger:      logger,
	}
}

// SyncAirport finds or creates the airport for the payload's IATA code and
// applies only the fields present in the payload. A repeated call with an
// identical payload updates nothing and never creates a duplicate row.
func (c *airportCreator) SyncAirport(ctx context.Context, input *AirportSyncInput) (*entity.Airport, error) {
	code, err := ResolveAirportIdentifier(input.IATACode)
	if err != nil {
		return nil, err
	}

	airport, err := c.airportRepo.FindByIATACode(ctx, code)
	if err != nil {
		return nil, err
	}

	created := airport == nil
	if created {
		airport = &entity.Airport{IATACode: code}
	}

	if input.Name != nil {
		airport.Name = *input.Name
	}
	if input.City != nil {
		airport.City = *input.City
	}
	if input.Country != nil {
		airport.Country = *input.Country
	}
	if input.Timezone != nil {
		airport.Timezone = *input.Timezone
	}

	if err := c.airportRepo.Upsert(ctx, airport); err != nil {
		c.logger.Error("Failed to upsert airport", "iataCode", code, "error", err)
		return nil, err
	}

	c.logger.Info("Airport synced", "iataCode", code, "created", created)
	return airport, nil
}
