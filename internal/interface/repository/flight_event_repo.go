package repository

import (
	"context"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightEventRepository implements the FlightEventRepository interface.
// Events are append-only: no update or delete operations exist.
type GormFlightEventRepository struct {
	db *gorm.DB
}

// NewGormFlightEventRepository creates a new GORM flight event repository
func NewGormFlightEventRepository(db *gorm.DB) repository.FlightEventRepository {
	return &GormFlightEventRepository{
		db: db,
	}
}

// FlightEvents GORM model for database mapping
type FlightEvents struct {
	ID        uint    `gorm:"primaryKey"`
	FlightID  uint    `gorm:"column:flight_id;index"`
	EventType string  `gorm:"column:event_type"`
	Field     string  `gorm:"column:field"`
	OldValue  *string `gorm:"column:old_value"`
	NewValue  string  `gorm:"column:new_value"`
	CreatedAt time.Time
}

// TableName overrides the default table name
func (FlightEvents) TableName() string {
	return "flight_events"
}

// Append writes one audit event
func (r *GormFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	model := fromFlightEventEntity(event)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	event.ID = model.ID
	event.CreatedAt = model.CreatedAt
	return nil
}

// ListByFlightID returns the audit trail for a flight in append order
func (r *GormFlightEventRepository) ListByFlightID(ctx context.Context, flightID uint) ([]entity.FlightEvent, error) {
	var models []FlightEvents
	result := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]entity.FlightEvent, 0, len(models))
	for i := range models {
		events = append(events, *toFlightEventEntity(&models[i]))
	}
	return events, nil
}

// toFlightEventEntity converts a GORM model to a domain entity
func toFlightEventEntity(model *FlightEvents) *entity.FlightEvent {
	return &entity.FlightEvent{
		ID:        model.ID,
		FlightID:  model.FlightID,
		EventType: model.EventType,
		Field:     model.Field,
		OldValue:  model.OldValue,
		NewValue:  model.NewValue,
		CreatedAt: model.CreatedAt,
	}
}

// fromFlightEventEntity converts a domain entity to a GORM model
func fromFlightEventEntity(event *entity.FlightEvent) *FlightEvents {
	return &FlightEvents{
		ID:        event.ID,
		FlightID:  event.FlightID,
		EventType: event.EventType,
		Field:     event.Field,
		OldValue:  event.OldValue,
		NewValue:  event.NewValue,
	}
}
