// Package user defines the persistence contract for users and roles.
package user

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
)

// Repository is the persistence contract for user records. Lookup methods
// return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, create *dto.UserCreate) (*dto.UserRead, error)
	Get(ctx context.Context, id uint) (*dto.UserRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*dto.UserRead, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*dto.UserRead, error)
	Update(ctx context.Context, id uint, update *dto.UserUpdate) error
	// SetRole reassigns the user's role, lazily creating the role row.
	SetRole(ctx context.Context, id uint, role domain.Role) error
	// Delete removes the user row permanently; sessions, resets, and accounts
	// cascade at the schema level.
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	// EnsureRole looks up a role row by name, creating it on first use.
	EnsureRole(ctx context.Context, role domain.Role) (uint, error)
}
