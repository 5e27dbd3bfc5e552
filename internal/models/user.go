package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"size:50;uniqueIndex;not null"`
	Email        string `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Reputation   int    `gorm:"not null;default:0"`

	// Relationships
	Deals    []Deal    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Votes    []Vote    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Saved    []Deal    `gorm:"many2many:saved_deals"`
}
