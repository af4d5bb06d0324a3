package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	IsSuperuser bool      `json:"is_superuser"`

	Groups []*Group `gorm:"many2many:user_groups" json:"groups,omitempty"`
	Timestamp
}

// Group is a named role-set. Membership in the "chef" group confers
// recipe-authoring rights.
type Group struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	Timestamp
}

func (u *User) HasGroup(name string) bool {
	for _, g := range u.Groups {
		if g != nil && g.Name == name {
			return true
		}
	}
	return false
}
