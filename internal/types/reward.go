package types

import (
	"time"

	"github.com/google/uuid"
)

// Reward holds a user's running point balance. The balance is only ever
// moved by atomic relative increments; the PointTransaction ledger is the
// source of truth it is derived from.
type Reward struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Points    int       `gorm:"not null;default:0;column:points" json:"points"`
	Level     int       `gorm:"not null;default:1;column:level" json:"level"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Reward) TableName() string { return "reward" }

const (
	TransactionEarnedActivity = "earned_activity"
	TransactionEarnedScan     = "earned_scan"
	TransactionEarnedReport   = "earned_report"
	TransactionEarnedCollect  = "earned_collect"
	TransactionRedeemed       = "redeemed"
)

// PointTransaction is one append-only ledger entry. Earned entries add to the
// balance, redeemed entries subtract; the read-model sum is floored at zero.
type PointTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Type        string    `gorm:"not null;column:type" json:"type"`
	Amount      int       `gorm:"not null;column:amount" json:"amount"`
	Description string    `gorm:"not null;column:description" json:"description"`
	Date        time.Time `gorm:"not null;index;column:date" json:"date"`
}

func (PointTransaction) TableName() string { return "point_transaction" }
