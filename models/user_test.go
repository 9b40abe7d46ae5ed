package models

import (
	"reflect"
	"strings"
	"testing"
)

func TestUserEmailColumnIsUnique(t *testing.T) {
	f, ok := reflect.TypeOf(User{}).FieldByName("Email")
	if !ok {
		t.Fatal("User has no Email field")
	}
	// Registration's check-then-create leaves a race window; the store-level
	// unique index is what actually guarantees one account per email.
	if !strings.Contains(f.Tag.Get("gorm"), "uniqueIndex") {
		t.Fatalf("Email must carry a unique index, gorm tag is %q", f.Tag.Get("gorm"))
	}
}
