package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account holder. Passwords are stored as bcrypt hashes only.
// PartnerID holds the id of the linked partner; at most one link exists and it
// is always symmetric (both rows point at each other).
type User struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Email         string         `gorm:"size:255;uniqueIndex" json:"email"`
	DisplayName   string         `gorm:"size:64" json:"display_name"`
	PasswordHash  string         `gorm:"size:255" json:"-"`
	Provider      string         `gorm:"size:32" json:"provider"`
	ProviderID    string         `gorm:"size:255" json:"provider_id"`
	PartnerID     *string        `gorm:"size:36;index" json:"partner_id"`
	TotalPoints   int            `gorm:"default:0" json:"total_points"`
	Streak        int            `gorm:"default:0" json:"streak"`
	LastCheckinAt *time.Time     `json:"last_checkin_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an opaque id and ensures timestamps are set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Linked reports whether the user already has a partner.
func (u *User) Linked() bool {
	return u.PartnerID != nil && *u.PartnerID != ""
}
