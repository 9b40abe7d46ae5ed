package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lovepoints/lovepoints/middleware"
	"github.com/lovepoints/lovepoints/models"
)

func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 20
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

// loadUser fetches a user by id through the given handle (tx or plain db).
func loadUser(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// challengeScope returns the collection scope the user's challenges live in:
// the pair id once linked, the user's own id otherwise.
func challengeScope(user *models.User) string {
	if user.Linked() {
		return models.PairID(user.ID, *user.PartnerID)
	}
	return user.ID
}

func sanitizeUserResponse(user models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"display_name":    user.DisplayName,
		"provider":        user.Provider,
		"partner_id":      user.PartnerID,
		"total_points":    user.TotalPoints,
		"streak":          user.Streak,
		"last_checkin_at": user.LastCheckinAt,
		"created_at":      user.CreatedAt,
	}
}

// publicUserResponse exposes only what a partner or stranger may see.
func publicUserResponse(user models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"display_name": user.DisplayName,
		"email":        user.Email,
		"total_points": user.TotalPoints,
		"streak":       user.Streak,
		"created_at":   user.CreatedAt,
	}
}
