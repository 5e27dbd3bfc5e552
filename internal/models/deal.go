package models

import "gorm.io/gorm"

const (
	DealStatusActive     = "active"
	DealStatusExpired    = "expired"
	DealStatusOutOfStock = "out_of_stock"
)

type Deal struct {
	gorm.Model

	Title       string  `gorm:"size:120;not null"`
	Description string  `gorm:"type:text"`
	Category    string  `gorm:"size:50"`
	Link        string  `gorm:"size:255"`
	Price       float64 `gorm:"not null"`                        // mutable projection of the latest PriceHistory entry
	Status      string  `gorm:"size:20;not null;default:active"` // "active", "expired", "out_of_stock"
	ImageURL    string  `gorm:"size:255"`
	UserID      uint    `gorm:"not null;index"`

	// Relationships
	User         User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments     []Comment      `gorm:"foreignKey:DealID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Votes        []Vote         `gorm:"foreignKey:DealID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	PriceHistory []PriceHistory `gorm:"foreignKey:DealID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SavedBy      []User         `gorm:"many2many:saved_deals"`
}
