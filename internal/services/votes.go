package services

import (
	"errors"

	"github.com/knowbargain/knowbargain/internal/models"
	"gorm.io/gorm"
)

// Vote states for a (user, deal) pair.
const (
	VoteStateNone = "none"
	VoteStateUp   = models.VoteTypeUp
	VoteStateDown = models.VoteTypeDown
)

var (
	ErrInvalidVoteType = errors.New("invalid vote type")
	ErrDealNotFound    = errors.New("deal not found")
	ErrUserNotFound    = errors.New("user not found")
)

type VoteResult struct {
	Previous string
	State    string
	Score    int
}

// CastVote applies one step of the per-(user, deal) vote state machine:
// no vote + cast(x) records x, an existing x + cast(x) removes the vote,
// and an existing x + cast(y) flips the row in place. The row mutation and
// the score recomputation run in one transaction, so the returned score
// always reflects the just-applied change and at most one vote row per
// (user, deal) pair exists at rest.
func CastVote(db *gorm.DB, userID, dealID uint, voteType string) (VoteResult, error) {
	if voteType != models.VoteTypeUp && voteType != models.VoteTypeDown {
		return VoteResult{}, ErrInvalidVoteType
	}

	var result VoteResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var deal models.Deal

		if err := tx.First(&deal, dealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDealNotFound
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND deal_id = ?", userID, dealID).First(&existing).Error

		switch {
		case err == nil && existing.VoteType == voteType:
			result.Previous = existing.VoteType
			// Same direction twice is a toggle-off. Hard delete so the
			// (user_id, deal_id) unique index only ever covers live rows.
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			result.State = VoteStateNone
		case err == nil:
			// Opposite direction flips the existing row, no second row.
			result.Previous = existing.VoteType
			existing.VoteType = voteType
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result.State = voteType
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.Previous = VoteStateNone
			vote := models.Vote{
				UserID:   userID,
				DealID:   dealID,
				VoteType: voteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			result.State = voteType
		default:
			return err
		}

		score, err := DealScore(tx, dealID)

		if err != nil {
			return err
		}

		result.Score = score
		return nil
	})

	if err != nil {
		return VoteResult{}, err
	}

	return result, nil
}

// DealScore computes up-votes minus down-votes. The score is derived on
// read and never stored on the deal.
func DealScore(db *gorm.DB, dealID uint) (int, error) {
	var up, down int64

	if err := db.Model(&models.Vote{}).
		Where("deal_id = ? AND vote_type = ?", dealID, models.VoteTypeUp).
		Count(&up).Error; err != nil {
		return 0, err
	}

	if err := db.Model(&models.Vote{}).
		Where("deal_id = ? AND vote_type = ?", dealID, models.VoteTypeDown).
		Count(&down).Error; err != nil {
		return 0, err
	}

	return int(up - down), nil
}
