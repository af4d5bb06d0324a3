package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserHasGroup(t *testing.T) {
	user := &User{
		ID: uuid.New(),
		Groups: []*Group{
			{ID: uuid.New(), Name: "chef"},
			nil,
		},
	}

	if !user.HasGroup("chef") {
		t.Error("HasGroup(chef) = false, want true")
	}
	if user.HasGroup("editors") {
		t.Error("HasGroup(editors) = true, want false")
	}

	empty := &User{ID: uuid.New()}
	if empty.HasGroup("chef") {
		t.Error("user without groups should not match")
	}
}
