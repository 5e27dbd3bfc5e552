package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/knowbargain/knowbargain/db"
	"github.com/knowbargain/knowbargain/internal/auth"
	"github.com/knowbargain/knowbargain/internal/models"
	"github.com/knowbargain/knowbargain/internal/types"
	"github.com/knowbargain/knowbargain/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Signup(ctx *gin.Context) {
	var body SignupRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.Username = strings.TrimSpace(body.Username)

	var existingUser models.User

	err := db.DB.Where("username = ? OR email = ?", body.Username, body.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Username, newUser.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"token":   token,
		"user": types.UserResponse{
			ID:         newUser.ID,
			Username:   newUser.Username,
			Email:      newUser.Email,
			Reputation: newUser.Reputation,
		},
	})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", body.Email).First(&existingUser).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(body.Password))

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateJWT(existingUser.ID, existingUser.Username, existingUser.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user_id": existingUser.ID,
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:         currentUser.ID,
		Username:   currentUser.Username,
		Email:      currentUser.Email,
		Reputation: currentUser.Reputation,
	})
}

func UserStats(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var stats types.UserStatsResponse

	if err := db.DB.Model(&models.Deal{}).Where("user_id = ?", currentUser.ID).Count(&stats.Deals).Error; err != nil {
		log.Printf("Failed to count deals: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&models.Comment{}).Where("user_id = ?", currentUser.ID).Count(&stats.Comments).Error; err != nil {
		log.Printf("Failed to count comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Table("saved_deals").Where("user_id = ?", currentUser.ID).Count(&stats.Saved).Error; err != nil {
		log.Printf("Failed to count saved deals: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	stats.Karma = currentUser.Reputation

	ctx.JSON(http.StatusOK, stats)
}
