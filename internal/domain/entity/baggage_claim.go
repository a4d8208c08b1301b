package entity

import (
	"time"

	"gorm.io/gorm"
)

// BaggageClaim represents a baggage claim belt assignable to an arriving flight
type BaggageClaim struct {
	ID        uint
	Number    string
	Terminal  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
