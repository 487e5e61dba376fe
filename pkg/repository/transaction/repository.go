// Package transaction defines the persistence contract for ledger entries.
package transaction

import (
	"context"
	"time"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/shopspring/decimal"
)

// Repository is the persistence contract for transactions. Get returns
// (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, create *dto.TransactionCreate) (*dto.TransactionRead, error)
	Get(ctx context.Context, id uint) (*dto.TransactionRead, error)
	ListByTag(ctx context.Context, tagID uint) ([]*dto.TransactionRead, error)
	// ListByAccount returns every transaction under any tag of the account,
	// oldest first.
	ListByAccount(ctx context.Context, accountID uint) ([]*dto.TransactionRead, error)
	// ListByUserAndDate returns the user's transactions with date in [from, to].
	ListByUserAndDate(ctx context.Context, userID uint, from, to time.Time) ([]*dto.TransactionRead, error)
	ListByUserTypeAndDate(ctx context.Context, userID uint, isIncome bool, from, to time.Time) ([]*dto.TransactionRead, error)
	Update(ctx context.Context, id uint, update *dto.TransactionUpdate) error
	Delete(ctx context.Context, id uint) error
	// SumSignedByTag returns the sum of signed amounts (+income, -expense)
	// for one tag pocket.
	SumSignedByTag(ctx context.Context, tagID uint) (decimal.Decimal, error)
	Count(ctx context.Context) (int64, error)
}
