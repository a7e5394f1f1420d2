package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WasteReport is a user-submitted waste sighting, AI-verified from a photo.
// Amount is free text straight from the model ("5 kg", "2-3 bags"), which is
// why the carbon offset derived from it is a heuristic.
type WasteReport struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User               *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Location           string         `gorm:"not null;column:location" json:"location"`
	WasteType          string         `gorm:"not null;column:waste_type" json:"waste_type"`
	Amount             string         `gorm:"not null;column:amount" json:"amount"`
	ImageURL           string         `gorm:"column:image_url" json:"image_url,omitempty"`
	VerificationResult datatypes.JSON `gorm:"type:jsonb;column:verification_result" json:"verification_result,omitempty"`
	Status             string         `gorm:"not null;default:pending;column:status" json:"status"`
	CollectorID        *uuid.UUID     `gorm:"type:uuid;column:collector_id" json:"collector_id,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;index" json:"created_at"`
}

func (WasteReport) TableName() string { return "waste_report" }

type CollectedWaste struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"report_id"`
	Report         *WasteReport `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReportID;references:ID" json:"report,omitempty"`
	CollectorID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"collector_id"`
	CollectionDate time.Time    `gorm:"not null;column:collection_date" json:"collection_date"`
	Status         string       `gorm:"not null;default:collected;column:status" json:"status"`
}

func (CollectedWaste) TableName() string { return "collected_waste" }
