package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight persistence.
// Find methods return (nil, nil) when no record matches.
type FlightRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Flight, error)
	FindByNumber(ctx context.Context, number string) (*entity.Flight, error)
	Upsert(ctx context.Context, flight *entity.Flight) error

	// UpdateWithEvent persists the flight and appends the audit event in a
	// single transaction: either both happen or neither.
	UpdateWithEvent(ctx context.Context, flight *entity.Flight, event *entity.FlightEvent) error
}
