// Package tag defines the persistence contract for tag pockets.
package tag

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/dto"
)

// Repository is the persistence contract for tag pockets. Get returns
// (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, create *dto.TagCreate) (*dto.TagRead, error)
	Get(ctx context.Context, id uint) (*dto.TagRead, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*dto.TagRead, error)
	Update(ctx context.Context, id uint, update *dto.TagUpdate) error
	Delete(ctx context.Context, id uint) error
}
