package entity

import (
	"time"
)

// Flight event types
const (
	EventGateChange    = "GATE_CHANGE"
	EventBaggageChange = "BAGGAGE_CHANGE"
	EventTimeUpdate    = "TIME_UPDATE"
	EventDeparture     = "DEPARTURE"
	EventArrival       = "ARRIVAL"
	EventStatusChange  = "STATUS_CHANGE"
)

// FlightEvent is one immutable audit record of a detected field change.
// Rows are append-only: they are never updated or deleted by this service.
// OldValue is nil when the field had no previous value. Field is set for
// TIME_UPDATE events to name the changed time field.
type FlightEvent struct {
	ID        uint
	FlightID  uint
	EventType string
	Field     string
	OldValue  *string
	NewValue  string
	CreatedAt time.Time
}
