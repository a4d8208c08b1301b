package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents an airport, unique on its IATA code. Created and updated
// only through the airport sync path.
type Airport struct {
	ID        uint
	IATACode  string
	Name      string
	City      string
	Country   string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
