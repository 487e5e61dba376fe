package dto

import "time"

// TagCreate represents the data needed to create a tag pocket.
type TagCreate struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=255"`
	AccountID   uint   `json:"accountId" validate:"required"`
}

// TagUpdate represents the fields that can be changed on a tag pocket.
type TagUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// TagRead is a read-optimized view of a tag pocket.
type TagRead struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AccountID   uint      `json:"accountId"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
