package services

import (
	"errors"

	"github.com/knowbargain/knowbargain/internal/models"
	"gorm.io/gorm"
)

// SavedDeal is the trimmed deal row returned for a user's saved list.
type SavedDeal struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	Link         string  `json:"link"`
	Status       string  `json:"status"`
	CommentCount int     `json:"comment_count"`
}

// ToggleSave flips set membership of (user, deal) in the saved relation and
// reports the resulting state. Calling it twice restores the prior state.
func ToggleSave(db *gorm.DB, userID, dealID uint) (bool, error) {
	var saved bool

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var deal models.Deal

		if err := tx.First(&deal, dealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDealNotFound
			}
			return err
		}

		var count int64

		if err := tx.Table("saved_deals").
			Where("user_id = ? AND deal_id = ?", userID, dealID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			if err := tx.Model(&user).Association("Saved").Delete(&deal); err != nil {
				return err
			}
			saved = false
			return nil
		}

		if err := tx.Model(&user).Association("Saved").Append(&deal); err != nil {
			return err
		}

		saved = true
		return nil
	})

	if err != nil {
		return false, err
	}

	return saved, nil
}

// ListSaved returns the user's bookmarked deals with comment counts.
func ListSaved(db *gorm.DB, userID uint) ([]SavedDeal, error) {
	var user models.User

	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var deals []models.Deal

	if err := db.Model(&user).Association("Saved").Find(&deals); err != nil {
		return nil, err
	}

	if len(deals) == 0 {
		return []SavedDeal{}, nil
	}

	dealIDs := make([]uint, 0, len(deals))

	for _, deal := range deals {
		dealIDs = append(dealIDs, deal.ID)
	}

	commentCounts, err := commentCountsByDeal(db, dealIDs)

	if err != nil {
		return nil, err
	}

	saved := make([]SavedDeal, 0, len(deals))

	for _, deal := range deals {
		saved = append(saved, SavedDeal{
			ID:           deal.ID,
			Title:        deal.Title,
			Price:        deal.Price,
			ImageURL:     deal.ImageURL,
			Link:         deal.Link,
			Status:       deal.Status,
			CommentCount: commentCounts[deal.ID],
		})
	}

	return saved, nil
}
