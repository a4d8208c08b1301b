package repository

import (
	"context"
	"errors"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID                 uint    `gorm:"primaryKey"`
	Number             string  `gorm:"column:number;index"`
	AirlineCode        string  `gorm:"column:airline_code"`
	OriginCode         string  `gorm:"column:origin_code"`
	DestinationCode    string  `gorm:"column:destination_code"`
	AircraftType       string  `gorm:"column:aircraft_type"`
	ScheduledDeparture *time.Time
	ScheduledArrival   *time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	StatusCode         string `gorm:"column:status_code"`
	GateID             *uint
	Gate               *Gates `gorm:"foreignKey:GateID"`
	BaggageClaimID     *uint
	BaggageClaim       *BaggageClaims `gorm:"foreignKey:BaggageClaimID"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "m_flights"
}

// FindByID finds a flight by its numeric id, with relations loaded
func (r *GormFlightRepository) FindByID(ctx context.Context, id uint) (*entity.Flight, error) {
	var flight Flights
	result := r.db.WithContext(ctx).
		Preload("Gate").
		Preload("BaggageClaim").
		First(&flight, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toFlightEntity(&flight), nil
}

// FindByNumber finds the current flight with the given flight number
func (r *GormFlightRepository) FindByNumber(ctx context.Context, number string) (*entity.Flight, error) {
	var flight Flights
	result := r.db.WithContext(ctx).
		Preload("Gate").
		Preload("BaggageClaim").
		Where("number = ?", number).
		Order("id DESC").
		First(&flight)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toFlightEntity(&flight), nil
}

// Upsert creates or updates a flight record
func (r *GormFlightRepository) Upsert(ctx context.Context, flight *entity.Flight) error {
	model := fromFlightEntity(flight)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	flight.ID = model.ID
	flight.CreatedAt = model.CreatedAt
	flight.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateWithEvent persists the flight and appends the audit event in one
// transaction, so no event row can exist without its persisted change
func (r *GormFlightRepository) UpdateWithEvent(ctx context.Context, flight *entity.Flight, event *entity.FlightEvent) error {
	model := fromFlightEntity(flight)
	eventModel := fromFlightEventEntity(event)
	eventModel.FlightID = model.ID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return tx.Create(eventModel).Error
	})
	if err != nil {
		return err
	}

	flight.UpdatedAt = model.UpdatedAt
	event.ID = eventModel.ID
	event.CreatedAt = eventModel.CreatedAt
	return nil
}

// toFlightEntity converts a GORM model to a domain entity
func toFlightEntity(model *Flights) *entity.Flight {
	flight := &entity.Flight{
		ID:                 model.ID,
		Number:             model.Number,
		AirlineCode:        model.AirlineCode,
		OriginCode:         model.OriginCode,
		DestinationCode:    model.DestinationCode,
		AircraftType:       model.AircraftType,
		ScheduledDeparture: model.ScheduledDeparture,
		ScheduledArrival:   model.ScheduledArrival,
		ActualDeparture:    model.ActualDeparture,
		ActualArrival:      model.ActualArrival,
		StatusCode:         model.StatusCode,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}

	if model.Gate != nil {
		flight.Gate = toGateEntity(model.Gate)
	}
	if model.BaggageClaim != nil {
		flight.BaggageClaim = toBaggageClaimEntity(model.BaggageClaim)
	}

	return flight
}

// fromFlightEntity converts a domain entity to a GORM model
func fromFlightEntity(flight *entity.Flight) *Flights {
	model := &Flights{
		ID:                 flight.ID,
		Number:             flight.Number,
		AirlineCode:        flight.AirlineCode,
		OriginCode:         flight.OriginCode,
		DestinationCode:    flight.DestinationCode,
		AircraftType:       flight.AircraftType,
		ScheduledDeparture: flight.ScheduledDeparture,
		ScheduledArrival:   flight.ScheduledArrival,
		ActualDeparture:    flight.ActualDeparture,
		ActualArrival:      flight.ActualArrival,
		StatusCode:         flight.StatusCode,
		CreatedAt:          flight.CreatedAt,
		UpdatedAt:          flight.UpdatedAt,
	}

	if flight.Gate != nil {
		gateID := flight.Gate.ID
		model.GateID = &gateID
	}
	if flight.BaggageClaim != nil {
		claimID := flight.BaggageClaim.ID
		model.BaggageClaimID = &claimID
	}

	return model
}
