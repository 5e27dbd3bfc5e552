package services

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/knowbargain/knowbargain/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidPrice = errors.New("price must be a finite non-negative number")

// AppendPrice records a new price point for a deal. The history insert and
// the Deal.Price update form one transaction; Deal.Price is always the
// price of the latest history entry.
func AppendPrice(db *gorm.DB, dealID uint, newPrice float64) (models.PriceHistory, error) {
	if math.IsNaN(newPrice) || math.IsInf(newPrice, 0) || newPrice < 0 {
		return models.PriceHistory{}, ErrInvalidPrice
	}

	var entry models.PriceHistory

	err := db.Transaction(func(tx *gorm.DB) error {
		var deal models.Deal

		if err := tx.First(&deal, dealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDealNotFound
			}
			return err
		}

		entry = models.PriceHistory{
			DealID:    deal.ID,
			Price:     newPrice,
			Timestamp: time.Now().UTC(),
		}

		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&deal).Update("price", newPrice).Error
	})

	if err != nil {
		return models.PriceHistory{}, err
	}

	return entry, nil
}

// GetPriceHistory returns a deal's price points oldest first.
func GetPriceHistory(db *gorm.DB, dealID uint) ([]models.PriceHistory, error) {
	var history []models.PriceHistory

	err := db.Where("deal_id = ?", dealID).Order("timestamp ASC").Find(&history).Error

	if err != nil {
		return nil, err
	}

	return history, nil
}

// SimulatePriceChange nudges the current price by a uniform factor in
// [0.85, 1.15], rounded to cents, and appends the result. This is a demo
// hook for exercising price tracking, not a pricing feed.
func SimulatePriceChange(db *gorm.DB, dealID uint) (models.PriceHistory, error) {
	var deal models.Deal

	if err := db.First(&deal, dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PriceHistory{}, ErrDealNotFound
		}
		return models.PriceHistory{}, err
	}

	factor := 0.85 + rand.Float64()*0.30
	newPrice := math.Round(deal.Price*factor*100) / 100

	return AppendPrice(db, deal.ID, newPrice)
}
