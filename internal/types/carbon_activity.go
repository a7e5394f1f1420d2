package types

import (
	"time"

	"github.com/google/uuid"
)

// CarbonActivity is immutable reference data: grams of CO2 per unit of a
// predefined activity.
type CarbonActivity struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category       string    `gorm:"not null;index;column:category" json:"category"` // transport | food | energy | shopping
	ActivityName   string    `gorm:"not null;column:activity_name" json:"activity_name"`
	EmissionFactor int       `gorm:"not null;column:emission_factor" json:"emission_factor"` // grams CO2 per unit
	Unit           string    `gorm:"not null;column:unit" json:"unit"`                       // km, kwh, kg, item
	Description    string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (CarbonActivity) TableName() string { return "carbon_activity" }
