package webhook

import (
	"encoding/json"
	"net/http"
	"time"

	"flightinfo-service/internal/domain/entity"
	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/correlation"
	"flightinfo-service/pkg/logger"
	"flightinfo-service/pkg/utils"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in an API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ResourceResponse represents an assigned gate or baggage claim
type ResourceResponse struct {
	ID       uint   `json:"id"`
	Number   string `json:"number"`
	Terminal string `json:"terminal,omitempty"`
}

// FlightResponse represents a flight in API responses
type FlightResponse struct {
	ID                 uint              `json:"id"`
	Number             string            `json:"flight_number"`
	AirlineCode        string            `json:"airline_code,omitempty"`
	OriginCode         string            `json:"origin_code,omitempty"`
	DestinationCode    string            `json:"destination_code,omitempty"`
	AircraftType       string            `json:"aircraft_type,omitempty"`
	ScheduledDeparture *string           `json:"scheduled_departure_time,omitempty"`
	ScheduledArrival   *string           `json:"scheduled_arrival_time,omitempty"`
	ActualDeparture    *string           `json:"actual_departure_time,omitempty"`
	ActualArrival      *string           `json:"actual_arrival_time,omitempty"`
	StatusCode         string            `json:"status_code"`
	Gate               *ResourceResponse `json:"gate,omitempty"`
	BaggageClaim       *ResourceResponse `json:"baggage_claim,omitempty"`
}

// AirportResponse represents an airport in API responses
type AirportResponse struct {
	ID       uint   `json:"id"`
	IATACode string `json:"iata_code"`
	Name     string `json:"name,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// EventResponse represents one audit trail entry in API responses
type EventResponse struct {
	ID        uint    `json:"id"`
	EventType string  `json:"event_type"`
	Field     string  `json:"field,omitempty"`
	OldValue  *string `json:"old_value"`
	NewValue  string  `json:"new_value"`
	CreatedAt string  `json:"created_at"`
}

func toFlightResponse(flight *entity.Flight) *FlightResponse {
	resp := &FlightResponse{
		ID:                 flight.ID,
		Number:             flight.Number,
		AirlineCode:        flight.AirlineCode,
		OriginCode:         flight.OriginCode,
		DestinationCode:    flight.DestinationCode,
		AircraftType:       flight.AircraftType,
		ScheduledDeparture: formatTime(flight.ScheduledDeparture),
		ScheduledArrival:   formatTime(flight.ScheduledArrival),
		ActualDeparture:    formatTime(flight.ActualDeparture),
		ActualArrival:      formatTime(flight.ActualArrival),
		StatusCode:         flight.StatusCode,
	}

	if flight.Gate != nil {
		resp.Gate = &ResourceResponse{
			ID:       flight.Gate.ID,
			Number:   flight.Gate.Number,
			Terminal: flight.Gate.Terminal,
		}
	}
	if flight.BaggageClaim != nil {
		resp.BaggageClaim = &ResourceResponse{
			ID:       flight.BaggageClaim.ID,
			Number:   flight.BaggageClaim.Number,
			Terminal: flight.BaggageClaim.Terminal,
		}
	}

	return resp
}

func toAirportResponse(airport *entity.Airport) *AirportResponse {
	return &AirportResponse{
		ID:       airport.ID,
		IATACode: airport.IATACode,
		Name:     airport.Name,
		City:     airport.City,
		Country:  airport.Country,
		Timezone: airport.Timezone,
	}
}

func toEventResponses(events []entity.FlightEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, EventResponse{
			ID:        event.ID,
			EventType: event.EventType,
			Field:     event.Field,
			OldValue:  event.OldValue,
			NewValue:  event.NewValue,
			CreatedAt: utils.FormatTimestamp(event.CreatedAt),
		})
	}
	return out
}

func formatTime(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	formatted := utils.FormatTimestamp(*ts)
	return &formatted
}

// writeSuccess sends a successful response envelope
func writeSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeError sends an error response. Validation-class failures carry their
// field-level message; anything else is logged with the correlation id and
// surfaced as a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		log.Error("Request failed",
			"path", r.URL.Path,
			"correlationId", correlation.FromContext(r.Context()),
			"error", err)
		appErr = apperrors.NewInternalError()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
		},
	})
}
