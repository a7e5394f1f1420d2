package types

import (
	"time"

	"github.com/google/uuid"
)

// CampusGroup is a dorm or department cohort used for group-level
// leaderboards. MemberCount and TotalCarbonTracked are eventually-consistent
// counters kept by atomic increments, never recomputed from scratch.
type CampusGroup struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"not null;column:name" json:"name"`
	Type               string    `gorm:"not null;column:type" json:"type"` // dorm | department
	Description        string    `gorm:"column:description" json:"description,omitempty"`
	MemberCount        int       `gorm:"not null;default:0;column:member_count" json:"member_count"`
	TotalCarbonTracked int       `gorm:"not null;default:0;column:total_carbon_tracked" json:"total_carbon_tracked"` // grams
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

func (CampusGroup) TableName() string { return "campus_group" }
