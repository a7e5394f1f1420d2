package types

import (
	"time"

	"github.com/google/uuid"
)

type VoiceConversation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Transcript     string    `gorm:"column:transcript" json:"transcript,omitempty"`
	Response       string    `gorm:"column:response" json:"response,omitempty"`
	FunctionCalled string    `gorm:"column:function_called" json:"function_called,omitempty"`
	Duration       int       `gorm:"column:duration" json:"duration"` // seconds
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (VoiceConversation) TableName() string { return "voice_conversation" }
