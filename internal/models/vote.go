package models

import "gorm.io/gorm"

const (
	VoteTypeUp   = "up"
	VoteTypeDown = "down"
)

// Vote holds a user's up/down signal on a deal. The composite unique index
// backs the at-most-one-vote-per-(user, deal) invariant at the storage layer;
// the vote service enforces it transactionally on top.
type Vote struct {
	gorm.Model

	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_deal"`
	DealID   uint   `gorm:"not null;uniqueIndex:idx_user_deal"`
	VoteType string `gorm:"size:10;not null"` // "up" or "down"

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Deal Deal `gorm:"foreignKey:DealID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
