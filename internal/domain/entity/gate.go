package entity

import (
	"time"

	"gorm.io/gorm"
)

// Gate represents a gate assignable to a flight. The restriction set lists
// aircraft type codes that must not be assigned to this gate.
type Gate struct {
	ID                      uint
	Number                  string
	Terminal                string
	RestrictedAircraftTypes []string
	CreatedAt               time.Time
	UpdatedAt               time.Time
	DeletedAt               gorm.DeletedAt
}

// IsRestrictedFor reports whether the gate refuses the given aircraft type
func (g *Gate) IsRestrictedFor(aircraftType string) bool {
	for _, restricted := range g.RestrictedAircraftTypes {
		if restricted == aircraftType {
			return true
		}
	}
	return false
}
