package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	DealID  uint   `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Deal Deal `gorm:"foreignKey:DealID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
