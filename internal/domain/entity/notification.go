package entity

import (
	"time"
)

// HubNotification is the outbound message relayed to the integration hub when
// a flight state change is detected
type HubNotification struct {
	FlightID      uint      `json:"flight_id"`
	FlightNumber  string    `json:"flight_number"`
	EventType     string    `json:"event_type"`
	Field         string    `json:"field,omitempty"`
	OldValue      *string   `json:"old_value"`
	NewValue      string    `json:"new_value"`
	OccurredAt    time.Time `json:"occurred_at"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}
