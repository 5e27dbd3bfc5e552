package services

import (
	"errors"
	"math"
	"time"

	"github.com/knowbargain/knowbargain/internal/models"
	"gorm.io/gorm"
)

var ErrTitleRequired = errors.New("title is required")

type CreateDealInput struct {
	Title       string
	Description string
	Category    string
	Link        string
	Price       float64
	ImageURL    string
	UserID      uint
}

// DealSummary is a deal row augmented with owner info and the derived
// score and comment count, computed at read time.
type DealSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Link         string    `json:"link"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	ImageURL     string    `json:"image_url"`
	Username     string    `json:"username"`
	Reputation   int       `json:"reputation"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int       `json:"comment_count"`
}

// CreateDeal inserts the deal and its initial price history entry in one
// transaction; a deal never exists without at least one history point.
func CreateDeal(db *gorm.DB, input CreateDealInput) (models.Deal, error) {
	if input.Title == "" {
		return models.Deal{}, ErrTitleRequired
	}

	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price < 0 {
		return models.Deal{}, ErrInvalidPrice
	}

	var deal models.Deal

	err := db.Transaction(func(tx *gorm.DB) error {
		deal = models.Deal{
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			Link:        input.Link,
			Price:       input.Price,
			Status:      models.DealStatusActive,
			ImageURL:    input.ImageURL,
			UserID:      input.UserID,
		}

		if err := tx.Create(&deal).Error; err != nil {
			return err
		}

		entry := models.PriceHistory{
			DealID:    deal.ID,
			Price:     input.Price,
			Timestamp: time.Now().UTC(),
		}

		return tx.Create(&entry).Error
	})

	if err != nil {
		return models.Deal{}, err
	}

	return deal, nil
}

// ListDeals returns all deals newest first. Owner rows, scores and comment
// counts come from batched grouped queries instead of per-row relationship
// walks.
func ListDeals(db *gorm.DB) ([]DealSummary, error) {
	var deals []models.Deal

	if err := db.Order("created_at DESC").Find(&deals).Error; err != nil {
		return nil, err
	}

	if len(deals) == 0 {
		return []DealSummary{}, nil
	}

	dealIDs := make([]uint, 0, len(deals))
	userIDs := make([]uint, 0, len(deals))

	for _, deal := range deals {
		dealIDs = append(dealIDs, deal.ID)
		userIDs = append(userIDs, deal.UserID)
	}

	owners, err := usersByID(db, userIDs)

	if err != nil {
		return nil, err
	}

	scores, err := scoresByDeal(db, dealIDs)

	if err != nil {
		return nil, err
	}

	commentCounts, err := commentCountsByDeal(db, dealIDs)

	if err != nil {
		return nil, err
	}

	summaries := make([]DealSummary, 0, len(deals))

	for _, deal := range deals {
		owner := owners[deal.UserID]

		summaries = append(summaries, DealSummary{
			ID:           deal.ID,
			Title:        deal.Title,
			Description:  deal.Description,
			Category:     deal.Category,
			Link:         deal.Link,
			Price:        deal.Price,
			Status:       deal.Status,
			ImageURL:     deal.ImageURL,
			Username:     owner.Username,
			Reputation:   owner.Reputation,
			Score:        scores[deal.ID],
			CreatedAt:    deal.CreatedAt,
			CommentCount: commentCounts[deal.ID],
		})
	}

	return summaries, nil
}

// GetDealSummary returns a single deal with its derived fields.
func GetDealSummary(db *gorm.DB, dealID uint) (DealSummary, error) {
	var deal models.Deal

	if err := db.First(&deal, dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DealSummary{}, ErrDealNotFound
		}
		return DealSummary{}, err
	}

	var owner models.User

	if err := db.First(&owner, deal.UserID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return DealSummary{}, err
	}

	score, err := DealScore(db, deal.ID)

	if err != nil {
		return DealSummary{}, err
	}

	commentCounts, err := commentCountsByDeal(db, []uint{deal.ID})

	if err != nil {
		return DealSummary{}, err
	}

	return DealSummary{
		ID:           deal.ID,
		Title:        deal.Title,
		Description:  deal.Description,
		Category:     deal.Category,
		Link:         deal.Link,
		Price:        deal.Price,
		Status:       deal.Status,
		ImageURL:     deal.ImageURL,
		Username:     owner.Username,
		Reputation:   owner.Reputation,
		Score:        score,
		CreatedAt:    deal.CreatedAt,
		CommentCount: commentCounts[deal.ID],
	}, nil
}

func usersByID(db *gorm.DB, ids []uint) (map[uint]models.User, error) {
	var users []models.User

	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.User, len(users))

	for _, user := range users {
		byID[user.ID] = user
	}

	return byID, nil
}

func scoresByDeal(db *gorm.DB, dealIDs []uint) (map[uint]int, error) {
	var rows []struct {
		DealID uint
		Score  int
	}

	err := db.Model(&models.Vote{}).
		Select("deal_id, SUM(CASE WHEN vote_type = ? THEN 1 ELSE -1 END) AS score", models.VoteTypeUp).
		Where("deal_id IN ?", dealIDs).
		Group("deal_id").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	scores := make(map[uint]int, len(rows))

	for _, row := range rows {
		scores[row.DealID] = row.Score
	}

	return scores, nil
}

func commentCountsByDeal(db *gorm.DB, dealIDs []uint) (map[uint]int, error) {
	var rows []struct {
		DealID uint
		Count  int
	}

	err := db.Model(&models.Comment{}).
		Select("deal_id, COUNT(*) AS count").
		Where("deal_id IN ?", dealIDs).
		Group("deal_id").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))

	for _, row := range rows {
		counts[row.DealID] = row.Count
	}

	return counts, nil
}
