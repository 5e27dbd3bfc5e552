package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knowbargain/knowbargain/db"
	"github.com/knowbargain/knowbargain/internal/services"
)

type PricePointResponse struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// SimulatePriceChange applies a random drift to a deal's price. Demo
// endpoint for exercising price tracking.
func SimulatePriceChange(ctx *gin.Context) {
	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	entry, err := services.SimulatePriceChange(db.DB, dealID)

	if err != nil {
		if errors.Is(err, services.ErrDealNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
			return
		}
		log.Printf("Failed to simulate price change for deal %d: %v", dealID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastDealEvent(DealEvent{
		Type:   DealEventPriceChanged,
		DealID: entry.DealID,
		Price:  entry.Price,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Price updated",
		"new_price": entry.Price,
		"timestamp": entry.Timestamp,
	})
}

func GetPriceHistory(ctx *gin.Context) {
	dealID, ok := dealIDParam(ctx)

	if !ok {
		return
	}

	history, err := services.GetPriceHistory(db.DB, dealID)

	if err != nil {
		log.Printf("Failed to fetch price history for deal %d: %v", dealID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	points := make([]PricePointResponse, 0, len(history))

	for _, entry := range history {
		points = append(points, PricePointResponse{
			Price:     entry.Price,
			Timestamp: entry.Timestamp,
		})
	}

	ctx.JSON(http.StatusOK, points)
}
