package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	CampusGroupID *uuid.UUID `gorm:"type:uuid;index" json:"campus_group_id,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
