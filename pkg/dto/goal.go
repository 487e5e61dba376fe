package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal target kinds. A target points at either an account or a tag pocket.
const (
	GoalTargetAccount = "account"
	GoalTargetTag     = "tag"
)

// GoalTargetSpec identifies one tracked account or tag.
type GoalTargetSpec struct {
	TargetType string `json:"targetType" validate:"required,oneof=account tag"`
	TargetID   uint   `json:"targetId" validate:"required"`
}

// GoalCreate represents the data needed to create a goal. A goal without at
// least one target is invalid.
type GoalCreate struct {
	Description string           `json:"description" validate:"required,max=255"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	MaxMoney    decimal.Decimal  `json:"maxMoney" validate:"required"`
	UserID      uint             `json:"-"`
	Targets     []GoalTargetSpec `json:"targets" validate:"required,min=1,dive"`
}

// GoalUpdate represents the fields that can be changed on a goal. A non-nil
// Targets slice replaces every existing target row.
type GoalUpdate struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,max=255"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	MaxMoney    *decimal.Decimal `json:"maxMoney,omitempty"`
	Targets     []GoalTargetSpec `json:"targets,omitempty" validate:"omitempty,min=1,dive"`
}

// GoalTargetRead is a read-optimized view of one goal target.
type GoalTargetRead struct {
	ID         uint   `json:"id"`
	TargetType string `json:"targetType"`
	TargetID   uint   `json:"targetId"`
}

// GoalRead is a read-optimized view of a goal.
type GoalRead struct {
	ID             uint             `json:"id"`
	Description    string           `json:"description"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	MaxMoney       decimal.Decimal  `json:"maxMoney"`
	ActualProgress decimal.Decimal  `json:"actualProgress"`
	UserID         uint             `json:"userId"`
	Targets        []GoalTargetRead `json:"targets"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
