package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceHistory rows are append-only; they are never updated or deleted.
type PriceHistory struct {
	gorm.Model

	DealID    uint      `gorm:"not null;index"`
	Price     float64   `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`

	// Relationships
	Deal Deal `gorm:"foreignKey:DealID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
