package dto

import (
	"time"

	"github.com/pocketfin/pocketfin/pkg/domain"
)

// UserCreate represents the data needed to create a new user.
type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required,min=6"`
	Nickname string `json:"nickname,omitempty" validate:"max=50"`
	RoleID   uint   `json:"-"`
}

// UserUpdate represents the fields that can be changed on a user. Nil fields
// are left untouched.
type UserUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,max=50"`
	Disabled *bool   `json:"disabled,omitempty"`
}

// UserRead is a read-optimized view of a user.
type UserRead struct {
	ID             uint        `json:"id"`
	Email          string      `json:"email"`
	HashedPassword string      `json:"-"`
	Nickname       string      `json:"nickname,omitempty"`
	Role           domain.Role `json:"role"`
	Disabled       bool        `json:"disabled"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
