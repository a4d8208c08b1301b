package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport persistence.
// FindByIATACode returns (nil, nil) when no record matches.
type AirportRepository interface {
	FindByIATACode(ctx context.Context, code string) (*entity.Airport, error)
	Upsert(ctx context.Context, airport *entity.Airport) error
}
