package repository

import (
	"context"

	"flightinfo-service/internal/domain/entity"
)

// GateRepository defines the interface for gate lookups
type GateRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.Gate, error)
}
