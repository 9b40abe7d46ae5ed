package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Point award sources.
const (
	PointsTypeCheckin   = "daily_checkin"
	PointsTypeChallenge = "challenge"
)

// PointsLog is the append-only audit record of a single point award. Rows are
// written in the same transaction as the user's TotalPoints update and are
// never mutated afterwards.
type PointsLog struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;index;not null" json:"user_id"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Points      int       `gorm:"not null" json:"points"`
	ChallengeID *string   `gorm:"size:36" json:"challenge_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate assigns an id when the caller did not provide one.
func (p *PointsLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}
