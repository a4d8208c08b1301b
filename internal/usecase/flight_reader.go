package usecase

import (
	"context"
	"fmt"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/logger"
)

// FlightReader exposes the read-only flight lookup paths
type FlightReader interface {
	GetFlight(ctx context.Context, id uint) (*entity.Flight, error)
	GetFlightByNumber(ctx context.Context, number string) (*entity.Flight, error)
	GetFlightEvents(ctx context.Context, id uint) ([]entity.FlightEvent, error)
}

type flightReader struct {
	flightRepo repository.FlightRepository
	eventRepo  repository.FlightEventRepository
	logger     logger.Logger
}

// NewFlightReader creates a new flight reader
func NewFlightReader(
	flightRepo repository.FlightRepository,
	eventRepo repository.FlightEventRepository,
	logger logger.Logger,
) FlightReader {
	return &flightReader{
		flightRepo: flightRepo,
		eventRepo:  eventRepo,
		logger:     logger,
	}
}

// GetFlight loads a flight by numeric id
func (r *flightReader) GetFlight(ctx context.Context, id uint) (*entity.Flight, error) {
	flight, err := r.flightRepo.FindByID(ctx, id)
	if err != nil {
		r.logger.Error("Failed to load flight", "flightId", id, "error", err)
		return nil, err
	}
	if flight == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("flight %d not found", id))
	}
	return flight, nil
}

// GetFlightByNumber loads the current flight with the given number
func (r *flightReader) GetFlightByNumber(ctx context.Context, number string) (*entity.Flight, error) {
	flight, err := r.flightRepo.FindByNumber(ctx, number)
	if err != nil {
		r.logger.Error("Failed to load flight", "flightNumber", number, "error", err)
		return nil, err
	}
	if flight == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("flight %s not found", number))
	}
	return flight, nil
}

// GetFlightEvents returns the audit trail for a flight in append order
func (r *flightReader) GetFlightEvents(ctx context.Context, id uint) ([]entity.FlightEvent, error) {
	if _, err := r.GetFlight(ctx, id); err != nil {
		return nil, err
	}
	return r.eventRepo.ListByFlightID(ctx, id)
}
