// Package category defines the persistence contract for categories.
package category

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/dto"
)

// Repository is the persistence contract for the category lookup table.
type Repository interface {
	Create(ctx context.Context, create *dto.CategoryCreate) (*dto.CategoryRead, error)
	Get(ctx context.Context, id uint) (*dto.CategoryRead, error)
	List(ctx context.Context) ([]*dto.CategoryRead, error)
	Update(ctx context.Context, id uint, update *dto.CategoryUpdate) error
	Delete(ctx context.Context, id uint) error
}
