// Package account defines the persistence contract for accounts.
package account

import (
	"context"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository is the persistence contract for accounts. Get returns (nil, nil)
// when no row matches.
type Repository interface {
	Create(ctx context.Context, create *dto.AccountCreate) (*dto.AccountRead, error)
	Get(ctx context.Context, id uint) (*dto.AccountRead, error)
	ListByUser(ctx context.Context, userID uint) ([]*dto.AccountRead, error)
	Update(ctx context.Context, id uint, update *dto.AccountUpdate) error
	// UpdateMoney overwrites the cached balance. Called only by the
	// transaction lifecycle, inside the same unit of work as the ledger write.
	UpdateMoney(ctx context.Context, id uint, money decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}
