// Package goal defines the persistence contract for savings goals.
package goal

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository is the persistence contract for goals and their targets. Get
// returns (nil, nil) when no row matches; targets are always loaded with the
// goal.
type Repository interface {
	Create(ctx context.Context, create *dto.GoalCreate) (*dto.GoalRead, error)
	Get(ctx context.Context, id uint) (*dto.GoalRead, error)
	ListByUser(ctx context.Context, userID uint) ([]*dto.GoalRead, error)
	// Update applies the partial update; a non-nil Targets slice deletes all
	// existing target rows and inserts the new set.
	Update(ctx context.Context, id uint, update *dto.GoalUpdate) error
	UpdateProgress(ctx context.Context, id uint, progress decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}
