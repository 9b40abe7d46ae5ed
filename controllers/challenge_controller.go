package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lovepoints/lovepoints/config"
	"github.com/lovepoints/lovepoints/models"
	"github.com/lovepoints/lovepoints/utils"
)

// ChallengeController manages shared/solo challenges and their completion.
type ChallengeController struct {
	db *gorm.DB
}

// NewChallengeController creates a new controller instance.
func NewChallengeController(db *gorm.DB) *ChallengeController {
	return &ChallengeController{db: db}
}

var (
	errEmptyTitle        = errors.New("title cannot be empty")
	errChallengeNotFound = errors.New("challenge not found")
	errAlreadyCompleted  = errors.New("challenge already completed")
)

const defaultChallengeListLimit = 50

// Create adds a challenge to the caller's scope (shared when linked).
func (cc *ChallengeController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Title  string `json:"title" binding:"required"`
		Points int    `json:"points"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, err.Error())
		return
	}

	points := req.Points
	if points < 0 {
		utils.Error(ctx, http.StatusBadRequest, 40052, "points must be positive")
		return
	}
	if points == 0 {
		points = config.Get().ChallengeDefaultPoints
	}

	user, err := loadUser(cc.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	scope := challengeScope(user)

	challenge := models.Challenge{
		ScopeID:   scope,
		Title:     title,
		Points:    points,
		CreatedBy: userID,
	}
	if err := cc.db.Create(&challenge).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to create challenge")
		return
	}

	utils.PublishChallengeEvent(scope)
	utils.Success(ctx, gin.H{"challenge": challenge})
}

// List returns the challenges in the caller's scope, newest first.
func (cc *ChallengeController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(cc.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	scope := challengeScope(user)

	limit := defaultChallengeListLimit
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	challenges, err := cc.loadSnapshot(scope, limit)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to list challenges")
		return
	}

	utils.Success(ctx, gin.H{
		"scope_id":   scope,
		"challenges": challenges,
	})
}

// Stream pushes full snapshots of the caller's challenge list over SSE: one on
// connect, then one after every change in scope. Consumers replace their state
// wholesale with each event; there is no diffing.
func (cc *ChallengeController) Stream(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(cc.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	scope := challengeScope(user)

	events := utils.SubscribeChallengeEvents(ctx.Request.Context(), scope)
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	// The scope can change mid-stream when the user gets linked. Each snapshot
	// is taken against the current scope; once it moves off the subscribed one
	// the stream ends after a final snapshot so the client reconnects on the
	// new scope.
	send := func() (sent, keep bool) {
		current := scope
		if u, err := loadUser(cc.db, userID); err == nil {
			current = challengeScope(u)
		}
		challenges, err := cc.loadSnapshot(current, defaultChallengeListLimit)
		if err != nil {
			return false, false
		}
		ctx.SSEvent("snapshot", gin.H{"scope_id": current, "challenges": challenges})
		return true, current == scope
	}

	if sent, _ := send(); !sent {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to load challenges")
		return
	}
	ctx.Writer.Flush()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case _, open := <-events:
			if !open {
				return false
			}
			sent, keep := send()
			return sent && keep
		case <-heartbeat.C:
			ctx.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}

// Complete marks a challenge done and awards its points to the caller.
// Challenge and user rows are locked in one transaction; exactly one of two
// racing completers wins and the points are added exactly once.
func (cc *ChallengeController) Complete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	challengeID := strings.TrimSpace(ctx.Param("id"))
	if challengeID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40053, "missing challenge id")
		return
	}

	var scope string
	var awarded, newTotal int
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		scope = challengeScope(&user)

		var challenge models.Challenge
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND scope_id = ?", challengeID, scope).
			First(&challenge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errChallengeNotFound
			}
			return err
		}
		if challenge.Completed() {
			return errAlreadyCompleted
		}

		now := time.Now()
		challenge.CompletedBy = &userID
		challenge.CompletedAt = &now
		if err := tx.Save(&challenge).Error; err != nil {
			return err
		}

		// Older rows created before the default existed may carry zero points.
		points := challenge.Points
		if points <= 0 {
			points = config.Get().ChallengeDefaultPoints
		}

		user.TotalPoints += points
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		entry := models.PointsLog{
			UserID:      userID,
			Type:        models.PointsTypeChallenge,
			Points:      points,
			ChallengeID: &challenge.ID,
			CreatedAt:   now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		awarded = points
		newTotal = user.TotalPoints
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errChallengeNotFound):
			utils.Error(ctx, http.StatusNotFound, 40450, err.Error())
		case errors.Is(err, errAlreadyCompleted):
			utils.Error(ctx, http.StatusConflict, 40950, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50053, "failed to complete challenge")
		}
		return
	}

	utils.PublishChallengeEvent(scope)
	utils.Success(ctx, gin.H{
		"points_awarded": awarded,
		"total_points":   newTotal,
	})
}

func (cc *ChallengeController) loadSnapshot(scope string, limit int) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0, limit)
	err := cc.db.Where("scope_id = ?", scope).
		Order("created_at DESC").
		Limit(limit).
		Find(&challenges).Error
	return challenges, err
}

// normalizeTitle sanitizes and trims a challenge title, rejecting titles that
// end up empty.
func normalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(utils.Sanitize(raw))
	if title == "" {
		return "", errEmptyTitle
	}
	if len([]rune(title)) > 255 {
		rs := []rune(title)
		title = string(rs[:255])
	}
	return title, nil
}
