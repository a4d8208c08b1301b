package usecase

import (
	"strings"

	"flightinfo-service/pkg/apperrors"
	"flightinfo-service/pkg/utils"
)

// FlightIdentifier is the resolved lookup strategy for a flight: numeric id
// when present, flight number otherwise
type FlightIdentifier struct {
	ID     uint
	Number string
}

// ByID reports whether the numeric id strategy was resolved
func (f FlightIdentifier) ByID() bool {
	return f.ID != 0
}

// ResolveFlightIdentifier determines the lookup key for a flight payload.
// A non-empty numeric id takes precedence over the flight number. Fails with
// a validation error when neither is usable, before any persistence happens.
func ResolveFlightIdentifier(flightID *utils.FlexID, flightNumber *string) (FlightIdentifier, error) {
	if flightID != nil && *flightID != 0 {
		return FlightIdentifier{ID: uint(*flightID)}, nil
	}

	if flightNumber != nil {
		if number := strings.TrimSpace(*flightNumber); number != "" {
			return FlightIdentifier{Number: utils.NormalizeCode(number)}, nil
		}
	}

	return FlightIdentifier{}, apperrors.NewInvalidIdentifierError("flight_id or flight_number")
}

// ResolveAirportIdentifier determines the lookup key for an airport payload,
// which is always the IATA code
func ResolveAirportIdentifier(iataCode *string) (string, error) {
	if iataCode != nil {
		if code := utils.NormalizeCode(*iataCode); code != "" {
			return code, nil
		}
	}

	return "", apperrors.NewInvalidIdentifierError("iata_code")
}
