package models

import (
	"sort"
	"strings"
	"time"
)

// PairCode is a single-use linking code. A code transitions used=false to
// used=true exactly once; only the claiming transaction sets ClaimedBy.
type PairCode struct {
	Code      string     `gorm:"primaryKey;size:6" json:"code"`
	OwnerID   string     `gorm:"size:36;index;not null" json:"owner_id"`
	Used      bool       `gorm:"default:false" json:"used"`
	ClaimedBy *string    `gorm:"size:36" json:"claimed_by"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// PairID derives the canonical identifier of a linked couple: the two user ids
// sorted lexicographically and joined by an underscore. Symmetric by
// construction, so both partners resolve the same shared scope.
func PairID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}
