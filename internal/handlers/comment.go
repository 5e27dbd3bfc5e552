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

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func AddComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	var body CommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot be empty"})
		return
	}

	comment, err := services.AddComment(db.DB, userID, dealID, body.Content)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyComment):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot be empty"})
		case errors.Is(err, services.ErrDealNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
		default:
			log.Printf("Failed to add comment to deal %d: %v", dealID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "Comment added",
		"comment_id": comment.ID,
	})
}

func GetComments(ctx *gin.Context) {
	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	comments, err := services.ListComments(db.DB, dealID)

	if err != nil {
		log.Printf("Failed to list comments for deal %d: %v", dealID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comments)
}
