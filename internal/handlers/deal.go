package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/knowbargain/knowbargain/db"
	"github.com/knowbargain/knowbargain/internal/services"
	"github.com/knowbargain/knowbargain/internal/utils"
)

type CreateDealRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Link        string   `json:"link"`
	Price       *float64 `json:"price" binding:"required"`
	ImageURL    string   `json:"image_url"`
}

// dealIDParam parses the :deal_id path segment. A malformed ID responds 400
// and reports false.
func dealIDParam(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("deal_id")

	id, err := strconv.ParseUint(raw, 10, 64)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deal ID"})
		return 0, false
	}

	return uint(id), true
}

func CreateDeal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateDealRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and price required"})
		return
	}

	deal, err := services.CreateDeal(db.DB, services.CreateDealInput{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Link:        body.Link,
		Price:       *body.Price,
		ImageURL:    body.ImageURL,
		UserID:      userID,
	})

	if err != nil {
		if errors.Is(err, services.ErrTitleRequired) || errors.Is(err, services.ErrInvalidPrice) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to create deal: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastDealEvent(DealEvent{
		Type:   DealEventCreated,
		DealID: deal.ID,
		Title:  deal.Title,
		Price:  deal.Price,
	})

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Deal created successfully",
		"deal_id": deal.ID,
	})
}

func ListDeals(ctx *gin.Context) {
	deals, err := services.ListDeals(db.DB)

	if err != nil {
		log.Printf("Failed to list deals: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, deals)
}

func GetDeal(ctx *gin.Context) {
	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	deal, err := services.GetDealSummary(db.DB, dealID)

	if err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
			return
		}
		log.Printf("Failed to fetch deal %d: %v", dealID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, deal)
}

func SaveDeal(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	saved, err := services.ToggleSave(db.DB, userID, dealID)

	if err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
			return
		}
		log.Printf("Failed to toggle save for deal %d: %v", dealID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	message := "Deal unsaved"

	if saved {
		message = "Deal saved"
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message, "saved": saved})
}

func GetSavedDeals(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	deals, err := services.ListSaved(db.DB, userID)

	if err != nil {
		log.Printf("Failed to list saved deals: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, deals)
}
