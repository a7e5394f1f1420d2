package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReceiptScan struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ImageURL     string         `gorm:"column:image_url" json:"image_url,omitempty"`
	StoreName    string         `gorm:"column:store_name" json:"store_name"`
	PurchaseDate string         `gorm:"column:purchase_date" json:"purchase_date"` // as reported on the receipt, may be "Unknown"
	TotalAmount  string         `gorm:"column:total_amount" json:"total_amount"`
	TotalCarbon  int            `gorm:"not null;column:total_carbon" json:"total_carbon"` // grams
	ItemCount    int            `gorm:"not null;default:0;column:item_count" json:"item_count"`
	Status       string         `gorm:"not null;default:processed;column:status" json:"status"`
	AIAnalysis   datatypes.JSON `gorm:"type:jsonb;column:ai_analysis" json:"ai_analysis,omitempty"` // raw model response
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
}

func (ReceiptScan) TableName() string { return "receipt_scan" }

type ScannedItem struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Receipt        *ReceiptScan `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReceiptID;references:ID" json:"receipt,omitempty"`
	ItemName       string       `gorm:"not null;column:item_name" json:"item_name"`
	Category       string       `gorm:"not null;column:category" json:"category"`
	Quantity       int          `gorm:"not null;default:1;column:quantity" json:"quantity"`
	Price          string       `gorm:"column:price" json:"price,omitempty"`
	CarbonEmission int          `gorm:"not null;column:carbon_emission" json:"carbon_emission"` // grams
	Confidence     int          `gorm:"not null;default:80;column:confidence" json:"confidence"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

func (ScannedItem) TableName() string { return "scanned_item" }
