package entity

import (
	"time"
)

// Inbound payload kinds
const (
	PayloadKindFlightSync   = "flight_sync"
	PayloadKindStatusUpdate = "status_update"
	PayloadKindAirportSync  = "airport_sync"
)

// InboundPayload is a raw webhook payload archived for replay and debugging.
// Archiving is best-effort and never blocks request processing.
type InboundPayload struct {
	ID            string                 `bson:"_id,omitempty"`
	Kind          string                 `bson:"kind"`
	CorrelationID string                 `bson:"correlationId"`
	Body          map[string]interface{} `bson:"body"`
	ReceivedAt    time.Time              `bson:"receivedAt"`
}
