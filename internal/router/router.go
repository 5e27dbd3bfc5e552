package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/knowbargain/knowbargain/internal/handlers"
	"github.com/knowbargain/knowbargain/internal/middleware"
	"github.com/knowbargain/knowbargain/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/deals", handlers.DealFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.GET("/stats", middleware.AuthMiddleware(), handlers.UserStats)
		}

		deals := api.Group("/deals")
		{
			deals.GET("", handlers.ListDeals)
			deals.POST("", middleware.AuthMiddleware(), handlers.CreateDeal)
			deals.GET("/saved", middleware.AuthMiddleware(), handlers.GetSavedDeals)
			deals.GET("/:deal_id", handlers.GetDeal)
			deals.POST("/:deal_id/save", middleware.AuthMiddleware(), handlers.SaveDeal)
			deals.POST("/:deal_id/vote", middleware.AuthMiddleware(), handlers.VoteDeal)
			deals.GET("/:deal_id/comments", handlers.GetComments)
			deals.POST("/:deal_id/comments", middleware.AuthMiddleware(), handlers.AddComment)
			deals.POST("/:deal_id/simulate_price_change", handlers.SimulatePriceChange)
			deals.GET("/:deal_id/price_history", handlers.GetPriceHistory)
		}
	}

	return r
}
