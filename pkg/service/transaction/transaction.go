// Package transaction implements the ledger lifecycle and the cached account
// balance it maintains. Every balance-changing operation runs the ledger
// write and the balance write inside one unit of work, so the pair commits or
// rolls back together.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	accountrepo "github.com/pocketfin/pocketfin/pkg/repository/account"
	tagrepo "github.com/pocketfin/pocketfin/pkg/repository/tag"
	transactionrepo "github.com/pocketfin/pocketfin/pkg/repository/transaction"
	"github.com/shopspring/decimal"
)

// Service implements transaction business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transaction service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// signedEffect is the transaction's contribution to its account balance:
// +amount for income, -amount for expense.
func signedEffect(amount decimal.Decimal, isIncome bool) decimal.Decimal {
	if isIncome {
		return amount
	}
	return amount.Neg()
}

// Create records a transaction and applies its effect to the tag's account.
// An effect that would leave the balance negative aborts the whole unit of
// work with domain.ErrInsufficientBalance.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	create *dto.TransactionCreate,
) (t *dto.TransactionRead, err error) {
	if !create.Amount.IsPositive() {
		return nil, domain.ErrValidation
	}
	if create.Date.IsZero() {
		create.Date = time.Now()
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		account, err := resolveOwnedAccount(ctx, uow, userID, create.TagID)
		if err != nil {
			return err
		}
		newBalance := account.Money.Add(signedEffect(create.Amount, create.IsIncome))
		if newBalance.IsNegative() {
			return domain.ErrInsufficientBalance
		}
		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		t, err = repo.Create(ctx, create)
		if err != nil {
			return err
		}
		arepo, err := accounts(uow)
		if err != nil {
			return err
		}
		return arepo.UpdateMoney(ctx, account.ID, newBalance)
	})
	if err != nil {
		s.logger.Error("Transaction create failed", "userID", userID, "error", err)
		return nil, err
	}
	return t, nil
}

// Get returns one of the user's transactions.
func (s *Service) Get(
	ctx context.Context,
	userID, id uint,
) (t *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t, _, err = ownedTransaction(ctx, uow, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByTag returns the transactions of one of the user's tag pockets.
func (s *Service) ListByTag(
	ctx context.Context,
	userID, tagID uint,
) (list []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := resolveOwnedAccount(ctx, uow, userID, tagID); err != nil {
			return err
		}
		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		list, err = repo.ListByTag(ctx, tagID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByDate returns the user's transactions dated within [from, to].
func (s *Service) ListByDate(
	ctx context.Context,
	userID uint,
	from, to time.Time,
) (list []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		list, err = repo.ListByUserAndDate(ctx, userID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByTypeAndDate returns the user's income or expense transactions dated
// within [from, to].
func (s *Service) ListByTypeAndDate(
	ctx context.Context,
	userID uint,
	isIncome bool,
	from, to time.Time,
) (list []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		list, err = repo.ListByUserTypeAndDate(ctx, userID, isIncome, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update modifies a transaction: the previous effect is reversed, the new
// effect applied, and the same negative-balance guard holds. Ledger and
// balance commit atomically.
func (s *Service) Update(
	ctx context.Context,
	userID, id uint,
	update *dto.TransactionUpdate,
) (t *dto.TransactionRead, err error) {
	if update.Amount != nil && !update.Amount.IsPositive() {
		return nil, domain.ErrValidation
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		current, account, err := ownedTransaction(ctx, uow, userID, id)
		if err != nil {
			return err
		}

		newAmount := current.Amount
		if update.Amount != nil {
			newAmount = *update.Amount
		}
		newIsIncome := current.IsIncome
		if update.IsIncome != nil {
			newIsIncome = *update.IsIncome
		}

		newBalance := account.Money.
			Sub(signedEffect(current.Amount, current.IsIncome)).
			Add(signedEffect(newAmount, newIsIncome))
		if newBalance.IsNegative() {
			return domain.ErrInsufficientBalance
		}

		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		arepo, err := accounts(uow)
		if err != nil {
			return err
		}
		if err := arepo.UpdateMoney(ctx, account.ID, newBalance); err != nil {
			return err
		}
		t, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("Transaction update failed", "id", id, "error", err)
		return nil, err
	}
	return t, nil
}

// Delete removes a transaction, reversing its effect on the account balance.
// Deleting an income that the balance can no longer cover is rejected with
// domain.ErrInsufficientBalance.
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		current, account, err := ownedTransaction(ctx, uow, userID, id)
		if err != nil {
			return err
		}
		newBalance := account.Money.Sub(signedEffect(current.Amount, current.IsIncome))
		if newBalance.IsNegative() {
			return domain.ErrInsufficientBalance
		}
		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		arepo, err := accounts(uow)
		if err != nil {
			return err
		}
		return arepo.UpdateMoney(ctx, account.ID, newBalance)
	})
	if err != nil {
		s.logger.Error("Transaction delete failed", "id", id, "error", err)
	}
	return err
}

// ownedTransaction resolves the transaction -> tag -> account chain and
// checks the account belongs to the user. Any broken link reads as not
// found.
func ownedTransaction(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, id uint,
) (*dto.TransactionRead, *dto.AccountRead, error) {
	repo, err := transactions(uow)
	if err != nil {
		return nil, nil, err
	}
	t, err := repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}
	account, err := resolveOwnedAccount(ctx, uow, userID, t.TagID)
	if err != nil {
		return nil, nil, err
	}
	return t, account, nil
}

// resolveOwnedAccount walks tag -> account and checks ownership.
func resolveOwnedAccount(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, tagID uint,
) (*dto.AccountRead, error) {
	trepo, err := tags(uow)
	if err != nil {
		return nil, err
	}
	tag, err := trepo.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	arepo, err := accounts(uow)
	if err != nil {
		return nil, err
	}
	account, err := arepo.Get(ctx, tag.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

func transactions(uow repository.UnitOfWork) (transactionrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*transactionrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(transactionrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid transaction repository type")
	}
	return repo, nil
}

func tags(uow repository.UnitOfWork) (tagrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*tagrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(tagrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid tag repository type")
	}
	return repo, nil
}

func accounts(uow repository.UnitOfWork) (accountrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*accountrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(accountrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid account repository type")
	}
	return repo, nil
}
