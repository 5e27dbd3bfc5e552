package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/knowbargain/knowbargain/db"
	"github.com/knowbargain/knowbargain/internal/services"
	"github.com/knowbargain/knowbargain/internal/utils"
)

type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

func VoteDeal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	var body VoteRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}

	result, err := services.CastVote(db.DB, userID, dealID, body.VoteType)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVoteType):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		case errors.Is(err, services.ErrDealNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		default:
			log.Printf("Failed to cast vote on deal %d: %v", dealID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var message string

	switch {
	case result.State == services.VoteStateNone:
		message = "Vote removed"
	case result.Previous == services.VoteStateNone:
		message = "Vote recorded"
	default:
		message = "Vote updated"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
		"state":   result.State,
		"score":   result.Score,
	})
}
