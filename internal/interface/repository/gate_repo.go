package repository

import (
	"context"
	"errors"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"
	"flightinfo-service/pkg/utils"

	"gorm.io/gorm"
)

// GormGateRepository implements the GateRepository interface
type GormGateRepository struct {
	db *gorm.DB
}

// NewGormGateRepository creates a new GORM gate repository
func NewGormGateRepository(db *gorm.DB) repository.GateRepository {
	return &GormGateRepository{
		db: db,
	}
}

// Gates GORM model for database mapping. The aircraft restriction set is
// stored as a comma-separated list of type codes.
type Gates struct {
	ID                      uint           `gorm:"primaryKey"`
	Number                  string         `gorm:"column:number"`
	Terminal                string         `gorm:"column:terminal"`
	RestrictedAircraftTypes string         `gorm:"column:restricted_aircraft_types"`
	DeletedAt               gorm.DeletedAt `gorm:"index"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// TableName overrides the default table name
func (Gates) TableName() string {
	return "m_gates"
}

// FindByID finds a gate by id
func (r *GormGateRepository) FindByID(ctx context.Context, id uint) (*entity.Gate, error) {
	var gate Gates
	result := r.db.WithContext(ctx).First(&gate, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toGateEntity(&gate), nil
}

// toGateEntity converts a GORM model to a domain entity
func toGateEntity(model *Gates) *entity.Gate {
	return &entity.Gate{
		ID:                      model.ID,
		Number:                  model.Number,
		Terminal:                model.Terminal,
		RestrictedAircraftTypes: utils.SplitCSV(model.RestrictedAircraftTypes),
		CreatedAt:               model.CreatedAt,
		UpdatedAt:               model.UpdatedAt,
		DeletedAt:               model.DeletedAt,
	}
}
