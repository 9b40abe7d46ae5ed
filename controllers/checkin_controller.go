package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lovepoints/lovepoints/config"
	"github.com/lovepoints/lovepoints/models"
	"github.com/lovepoints/lovepoints/utils"
)

// CheckinController handles the daily check-in and streak accounting.
type CheckinController struct {
	db *gorm.DB
}

// NewCheckinController creates a new controller instance.
func NewCheckinController(db *gorm.DB) *CheckinController {
	return &CheckinController{db: db}
}

var errAlreadyCheckedInToday = errors.New("already checked in today")

// Daily records a daily check-in and updates streak and points. The user row
// is re-read under a lock inside the transaction, so a stale client cannot
// check in twice: the second attempt sees today's timestamp and fails.
func (c *CheckinController) Daily(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	reward := config.Get().CheckinRewardPoints

	var newTotal, newStreak int
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		// Clock read inside the transaction so the stored timestamp and the
		// streak decision agree.
		now := time.Now()
		streak, err := nextStreak(user.LastCheckinAt, user.Streak, now)
		if err != nil {
			return err
		}

		user.TotalPoints += reward
		user.Streak = streak
		user.LastCheckinAt = &now

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		entry := models.PointsLog{
			UserID:    userID,
			Type:      models.PointsTypeCheckin,
			Points:    reward,
			CreatedAt: now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		newTotal = user.TotalPoints
		newStreak = user.Streak
		return nil
	})

	if err != nil {
		if errors.Is(err, errAlreadyCheckedInToday) {
			utils.Error(ctx, http.StatusBadRequest, 40030, err.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to record check-in")
		return
	}

	utils.Success(ctx, gin.H{
		"points_awarded": reward,
		"total_points":   newTotal,
		"streak":         newStreak,
	})
}

// Status returns the user's points, streak and whether today is already done.
func (c *CheckinController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(c.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{
		"total_points":     user.TotalPoints,
		"streak":           user.Streak,
		"last_checkin_at":  user.LastCheckinAt,
		"checked_in_today": isCheckedInToday(user.LastCheckinAt, time.Now()),
	})
}

// nextStreak decides the streak value for a check-in at now given the previous
// check-in time. Same local day fails; exactly one day later continues the
// streak; any other gap (including clock skew backwards) resets to 1.
func nextStreak(last *time.Time, prev int, now time.Time) (int, error) {
	if last == nil {
		return 1, nil
	}
	switch diffLocalDays(now, *last) {
	case 0:
		return 0, errAlreadyCheckedInToday
	case 1:
		return prev + 1, nil
	default:
		return 1, nil
	}
}

// isCheckedInToday reports whether last falls on the same local calendar day
// as now. Shares diffLocalDays with the streak rule so the two checks cannot
// disagree about the day boundary.
func isCheckedInToday(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	return diffLocalDays(now, *last) == 0
}

// startOfLocalDay truncates t to local midnight.
func startOfLocalDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// diffLocalDays returns the whole-day difference between the local calendar
// days of a and b, rounded to absorb DST shifts around the 24h boundary.
func diffLocalDays(a, b time.Time) int {
	delta := startOfLocalDay(a).Sub(startOfLocalDay(b)).Hours() / 24
	return int(math.Round(delta))
}
