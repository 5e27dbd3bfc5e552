package services

import (
	"errors"
	"strings"
	"time"

	"github.com/knowbargain/knowbargain/internal/models"
	"gorm.io/gorm"
)

var ErrEmptyComment = errors.New("comment cannot be empty")

type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AddComment attaches a non-empty comment to an existing deal.
func AddComment(db *gorm.DB, userID, dealID uint, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, ErrEmptyComment
	}

	var deal models.Deal

	if err := db.First(&deal, dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, ErrDealNotFound
		}
		return models.Comment{}, err
	}

	comment := models.Comment{
		UserID:  userID,
		DealID:  dealID,
		Content: content,
	}

	if err := db.Create(&comment).Error; err != nil {
		return models.Comment{}, err
	}

	return comment, nil
}

// ListComments returns a deal's comments newest first, with usernames
// resolved in one batched query.
func ListComments(db *gorm.DB, dealID uint) ([]CommentView, error) {
	var comments []models.Comment

	err := db.Where("deal_id = ?", dealID).Order("created_at DESC").Find(&comments).Error

	if err != nil {
		return nil, err
	}

	if len(comments) == 0 {
		return []CommentView{}, nil
	}

	userIDs := make([]uint, 0, len(comments))

	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}

	authors, err := usersByID(db, userIDs)

	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))

	for _, comment := range comments {
		views = append(views, CommentView{
			ID:        comment.ID,
			Content:   comment.Content,
			Username:  authors[comment.UserID].Username,
			CreatedAt: comment.CreatedAt,
		})
	}

	return views, nil
}
