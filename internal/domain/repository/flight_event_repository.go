package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// FlightEventRepository defines the interface for the append-only audit trail
type FlightEventRepository interface {
	Append(ctx context.Context, event *entity.FlightEvent) error
	ListByFlightID(ctx context.Context, flightID uint) ([]entity.FlightEvent, error)
}
