package types

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User               *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalCarbonTracked int        `gorm:"not null;default:0;column:total_carbon_tracked" json:"total_carbon_tracked"` // grams
	ReceiptsScanned    int        `gorm:"not null;default:0;column:receipts_scanned" json:"receipts_scanned"`
	EcoScore           int        `gorm:"not null;default:0;column:eco_score" json:"eco_score"`
	WeeklyGoal         int        `gorm:"not null;default:10000;column:weekly_goal" json:"weekly_goal"` // grams
	Streak             int        `gorm:"not null;default:0;column:streak" json:"streak"`               // consecutive days with a log
	LastActivityDate   *time.Time `gorm:"column:last_activity_date" json:"last_activity_date,omitempty"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profile" }
