package usecase

import (
	"flightinfo-service/pkg/utils"
)

// Typed inputs for the sync and status update operations. Fields are pointers
// so an absent payload key stays distinguishable from an empty value: absent
// fields leave the persisted record untouched (partial update semantics).
// Unrecognized payload keys are dropped by JSON decoding, not treated as
// errors.

// FlightSyncInput carries an inbound flight sync payload
type FlightSyncInput struct {
	FlightID           *utils.FlexID `json:"flight_id"`
	FlightNumber       *string       `json:"flight_number"`
	AirlineCode        *string       `json:"airline_code"`
	OriginCode         *string       `json:"origin_code"`
	DestinationCode    *string       `json:"destination_code"`
	AircraftType       *string       `json:"aircraft_type"`
	ScheduledDeparture *string       `json:"scheduled_departure_time"`
	ScheduledArrival   *string       `json:"scheduled_arrival_time"`
	StatusCode         *string       `json:"status_code"`
}

// StatusUpdateInput carries an inbound status update payload
type StatusUpdateInput struct {
	FlightID     *utils.FlexID `json:"flight_id"`
	FlightNumber *string       `json:"flight_number"`
	StatusCode   *string       `json:"status_code"`
}

// AirportSyncInput carries an inbound airport sync payload
type AirportSyncInput struct {
	IATACode *string `json:"iata_code"`
	Name     *string `json:"name"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
	Timezone *string `json:"timezone"`
}
