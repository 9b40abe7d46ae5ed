package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lovepoints/lovepoints/models"
	"github.com/lovepoints/lovepoints/utils"
)

// PairingController handles partner code creation and redemption.
type PairingController struct {
	db *gorm.DB
}

// NewPairingController creates a new controller instance.
func NewPairingController(db *gorm.DB) *PairingController {
	return &PairingController{db: db}
}

var (
	errAlreadyLinked        = errors.New("you are already linked")
	errCodeNotFound         = errors.New("invalid or expired code")
	errCodeAlreadyUsed      = errors.New("code already used")
	errSelfLink             = errors.New("cannot use your own code")
	errPartnerAlreadyLinked = errors.New("partner is already linked")
)

// how many fresh codes to try when the insert hits a primary-key collision
const codeCreateAttempts = 5

// CreateCode generates a single-use partner code owned by the caller.
func (p *PairingController) CreateCode(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(p.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}
	if user.Linked() {
		utils.Error(ctx, http.StatusConflict, 40940, errAlreadyLinked.Error())
		return
	}

	var record models.PairCode
	for attempt := 0; attempt < codeCreateAttempts; attempt++ {
		record = models.PairCode{
			Code:    utils.GenerateLinkCode(),
			OwnerID: userID,
			Used:    false,
		}
		err = p.db.Create(&record).Error
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create code")
			return
		}
		// collision with an existing code, try again with a fresh one
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to create code")
		return
	}

	utils.Success(ctx, gin.H{
		"code":       record.Code,
		"created_at": record.CreatedAt,
	})
}

// Redeem links the caller with the owner of the submitted code. The whole
// read-validate-write sequence runs in one transaction with the three rows
// locked, so two racing redeemers cannot both claim the code.
func (p *PairingController) Redeem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid request payload")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		utils.Error(ctx, http.StatusBadRequest, 40042, "code cannot be empty")
		return
	}

	var partnerID string
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var record models.PairCode
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("code = ?", code).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCodeNotFound
			}
			return err
		}

		lockUser := func(id string, dst *models.User) error {
			return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(dst).Error
		}

		// Two users redeeming each other's codes at once must take the
		// user-row locks in the same order or InnoDB deadlocks one of them.
		var first, second models.User
		firstID, secondID := redeemLockOrder(userID, record.OwnerID)
		if err := lockUser(firstID, &first); err != nil {
			return err
		}
		if secondID != firstID {
			if err := lockUser(secondID, &second); err != nil {
				return err
			}
		} else {
			second = first
		}

		caller, owner := &first, &second
		if first.ID != userID {
			caller, owner = &second, &first
		}

		if err := validateRedeem(caller, &record, owner); err != nil {
			return err
		}

		now := time.Now()
		caller.PartnerID = &owner.ID
		owner.PartnerID = &caller.ID
		record.Used = true
		record.ClaimedBy = &caller.ID
		record.UsedAt = &now

		if err := tx.Save(caller).Error; err != nil {
			return err
		}
		if err := tx.Save(owner).Error; err != nil {
			return err
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		partnerID = owner.ID
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errAlreadyLinked):
			utils.Error(ctx, http.StatusConflict, 40940, err.Error())
		case errors.Is(err, errCodeNotFound):
			utils.Error(ctx, http.StatusNotFound, 40440, err.Error())
		case errors.Is(err, errCodeAlreadyUsed):
			utils.Error(ctx, http.StatusConflict, 40941, err.Error())
		case errors.Is(err, errSelfLink):
			utils.Error(ctx, http.StatusConflict, 40942, err.Error())
		case errors.Is(err, errPartnerAlreadyLinked):
			utils.Error(ctx, http.StatusConflict, 40943, err.Error())
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to redeem code")
		}
		return
	}

	// Both sides now share one challenge scope. Streams still attached to
	// either former solo scope get woken too so they can pick up the link.
	for _, scope := range redeemEventScopes(userID, partnerID) {
		utils.PublishChallengeEvent(scope)
	}

	utils.Success(ctx, gin.H{
		"partner_id": partnerID,
		"pair_id":    models.PairID(userID, partnerID),
	})
}

// Status returns the caller's link state and the partner's public identity.
func (p *PairingController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(p.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}

	if !user.Linked() {
		utils.Success(ctx, gin.H{"linked": false})
		return
	}

	partner, err := loadUser(p.db, *user.PartnerID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load partner")
		return
	}

	utils.Success(ctx, gin.H{
		"linked":  true,
		"pair_id": models.PairID(user.ID, partner.ID),
		"partner": publicUserResponse(*partner),
	})
}

// redeemLockOrder fixes the order the two user rows are locked in during a
// redeem: ascending by id, the same ordering PairID uses.
func redeemLockOrder(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// redeemEventScopes lists every stream scope a fresh link must notify: the
// new shared scope plus both former solo scopes.
func redeemEventScopes(a, b string) []string {
	return []string{models.PairID(a, b), a, b}
}

// validateRedeem applies the linking preconditions against freshly locked
// rows. Re-validation happens here, not on client-supplied state, so it holds
// however often the surrounding transaction is retried.
func validateRedeem(caller *models.User, code *models.PairCode, owner *models.User) error {
	if caller.Linked() {
		return errAlreadyLinked
	}
	if code.Used {
		return errCodeAlreadyUsed
	}
	if code.OwnerID == caller.ID {
		return errSelfLink
	}
	if owner.Linked() {
		return errPartnerAlreadyLinked
	}
	return nil
}
