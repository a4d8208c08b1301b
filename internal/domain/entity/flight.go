package entity

import (
	"fmt"
	"time"
)

// Time field names accepted by the time-update path
const (
	TimeFieldScheduledDeparture = "scheduled_departure"
	TimeFieldScheduledArrival   = "scheduled_arrival"
	TimeFieldActualDeparture    = "actual_departure"
	TimeFieldActualArrival      = "actual_arrival"
)

// Flight represents a flight record. Writes go through the sync and status
// update paths only; the status code is never mutated directly.
type Flight struct {
	ID                 uint
	Number             string
	AirlineCode        string
	OriginCode         string
	DestinationCode    string
	AircraftType       string
	ScheduledDeparture *time.Time
	ScheduledArrival   *time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	StatusCode         string
	Gate               *Gate
	BaggageClaim       *BaggageClaim
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TimeValue returns the named time field
func (f *Flight) TimeValue(field string) (*time.Time, error) {
	switch field {
	case TimeFieldScheduledDeparture:
		return f.ScheduledDeparture, nil
	case TimeFieldScheduledArrival:
		return f.ScheduledArrival, nil
	case TimeFieldActualDeparture:
		return f.ActualDeparture, nil
	case TimeFieldActualArrival:
		return f.ActualArrival, nil
	default:
		return nil, fmt.Errorf("unknown time field: %s", field)
	}
}

// SetTimeValue sets the named time field
func (f *Flight) SetTimeValue(field string, value time.Time) error {
	switch field {
	case TimeFieldScheduledDeparture:
		f.ScheduledDeparture = &value
	case TimeFieldScheduledArrival:
		f.ScheduledArrival = &value
	case TimeFieldActualDeparture:
		f.ActualDeparture = &value
	case TimeFieldActualArrival:
		f.ActualArrival = &value
	default:
		return fmt.Errorf("unknown time field: %s", field)
	}
	return nil
}

// GateID returns the id of the currently assigned gate, or 0
func (f *Flight) GateID() uint {
	if f.Gate == nil {
		return 0
	}
	return f.Gate.ID
}

// BaggageClaimID returns the id of the currently assigned claim, or 0
func (f *Flight) BaggageClaimID() uint {
	if f.BaggageClaim == nil {
		return 0
	}
	return f.BaggageClaim.ID
}
