package repository

import (
	"context"
	"errors"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID        uint           `gorm:"primaryKey"`
	IATACode  string         `gorm:"column:iata_code;unique"`
	Name      string         `gorm:"column:name"`
	City      string         `gorm:"column:city"`
	Country   string         `gorm:"column:country"`
	Timezone  string         `gorm:"column:timezone"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// FindByIATACode finds an airport by its IATA code
func (r *GormAirportRepository) FindByIATACode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Where("iata_code = ?", code).First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toAirportEntity(&airport), nil
}

// Upsert creates or updates an airport record, keyed on IATA code via the
// primary key resolved by the caller
func (r *GormAirportRepository) Upsert(ctx context.Context, airport *entity.Airport) error {
	model := &Airports{
		ID:       airport.ID,
		IATACode: airport.IATACode,
		Name:     airport.Name,
		City:     airport.City,
		Country:  airport.Country,
		Timezone: airport.Timezone,
	}
	if airport.ID != 0 {
		model.CreatedAt = airport.CreatedAt
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	airport.ID = model.ID
	airport.CreatedAt = model.CreatedAt
	airport.UpdatedAt = model.UpdatedAt
	return nil
}

// toAirportEntity converts a GORM model to a domain entity
func toAirportEntity(model *Airports) *entity.Airport {
	return &entity.Airport{
		ID:        model.ID,
		IATACode:  model.IATACode,
		Name:      model.Name,
		City:      model.City,
		Country:   model.Country,
		Timezone:  model.Timezone,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: model.DeletedAt,
	}
}
