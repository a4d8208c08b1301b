package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// BaggageClaimRepository defines the interface for baggage claim lookups
type BaggageClaimRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.BaggageClaim, error)
}
