package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Challenge is a task one partner can complete for bonus points. ScopeID is
// the owner's user id for unpaired users, or the derived pair id once linked.
// A challenge moves Open -> Completed once and is never reopened.
type Challenge struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	ScopeID     string     `gorm:"size:80;index;not null" json:"scope_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Points      int        `gorm:"default:20" json:"points"`
	CreatedBy   string     `gorm:"size:36;not null" json:"created_by"`
	CompletedBy *string    `gorm:"size:36" json:"completed_by"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BeforeCreate assigns an id when the caller did not provide one.
func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// Completed reports whether the challenge reached its terminal state.
func (c *Challenge) Completed() bool {
	return c.CompletedBy != nil && *c.CompletedBy != ""
}
