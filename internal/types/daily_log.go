package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogSourceManual = "manual"
	LogSourceVoice  = "voice"
	LogSourceScan   = "scan"
)

// DailyLog is one logged carbon-emitting activity. CarbonEmitted is computed
// from the emission factor at log time and never re-derived, so history stays
// stable if the factor table changes.
type DailyLog struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ActivityID    *uuid.UUID      `gorm:"type:uuid;index" json:"activity_id,omitempty"`
	Activity      *CarbonActivity `gorm:"foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	Category      string          `gorm:"column:category;index" json:"category"`
	ActivityType  string          `gorm:"column:activity_type" json:"activity_type"`
	Quantity      float64         `gorm:"not null;column:quantity" json:"quantity"`
	Unit          string          `gorm:"column:unit" json:"unit"`
	CarbonEmitted int             `gorm:"not null;column:carbon_emitted" json:"carbon_emitted"` // grams
	Date          time.Time       `gorm:"not null;index;column:date" json:"date"`
	Notes         string          `gorm:"column:notes" json:"notes,omitempty"`
	Source        string          `gorm:"not null;default:manual;column:source" json:"source"`
}

func (DailyLog) TableName() string { return "daily_log" }
