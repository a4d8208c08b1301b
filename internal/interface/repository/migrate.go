package repository

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all GORM models owned by this
// package
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Gates{},
		&BaggageClaims{},
		&Airports{},
		&Flights{},
		&FlightEvents{},
	)
}
