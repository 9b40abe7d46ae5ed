package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lovepoints/lovepoints/models"
	"github.com/lovepoints/lovepoints/utils"
)

// PointsController exposes the append-only award history and a reconciliation
// summary over it.
type PointsController struct {
	db *gorm.DB
}

// NewPointsController creates a new controller instance.
func NewPointsController(db *gorm.DB) *PointsController {
	return &PointsController{db: db}
}

// Log returns the caller's point awards, newest first, paginated.
func (pc *PointsController) Log(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var total int64
	if err := pc.db.Model(&models.PointsLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to count point awards")
		return
	}

	var entries []models.PointsLog
	if err := pc.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load point awards")
		return
	}

	utils.Success(ctx, gin.H{
		"items": entries,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// Summary returns the denormalized total alongside the sum over the log, so
// clients (and operators) can spot drift between the two.
func (pc *PointsController) Summary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(pc.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load user")
		return
	}

	var logged int64
	if err := pc.db.Model(&models.PointsLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&logged).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to sum point awards")
		return
	}

	utils.Success(ctx, gin.H{
		"total_points":  user.TotalPoints,
		"logged_points": logged,
		"reconciled":    int64(user.TotalPoints) == logged,
		"streak":        user.Streak,
	})
}
