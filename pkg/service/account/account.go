// Package account provides owner-scoped account management. Every lookup is
// filtered by the calling user; foreign accounts read as not found.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	accountrepo "github.com/pocketfin/pocketfin/pkg/repository/account"
	categoryrepo "github.com/pocketfin/pocketfin/pkg/repository/category"
)

// Service implements account business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an account service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create opens an account for the user under an existing category.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	create *dto.AccountCreate,
) (a *dto.AccountRead, err error) {
	create.UserID = userID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		crepo, err := categories(uow)
		if err != nil {
			return err
		}
		cat, err := crepo.Get(ctx, create.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		arepo, err := accounts(uow)
		if err != nil {
			return err
		}
		a, err = arepo.Create(ctx, create)
		return err
	})
	if err != nil {
		s.logger.Error("Account create failed", "userID", userID, "error", err)
		return nil, err
	}
	return a, nil
}

// Get returns one of the user's accounts.
func (s *Service) Get(
	ctx context.Context,
	userID, id uint,
) (a *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accounts(uow)
		if err != nil {
			return err
		}
		a, err = ownedAccount(ctx, repo, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns every account the user owns.
func (s *Service) List(
	ctx context.Context,
	userID uint,
) (list []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accounts(uow)
		if err != nil {
			return err
		}
		list, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies a partial update to one of the user's accounts. A direct
// money edit is accepted as-is; only the transaction lifecycle enforces the
// balance invariant.
func (s *Service) Update(
	ctx context.Context,
	userID, id uint,
	update *dto.AccountUpdate,
) (a *dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accounts(uow)
		if err != nil {
			return err
		}
		if _, err := ownedAccount(ctx, repo, userID, id); err != nil {
			return err
		}
		if update.CategoryID != nil {
			crepo, err := categories(uow)
			if err != nil {
				return err
			}
			cat, err := crepo.Get(ctx, *update.CategoryID)
			if err != nil {
				return err
			}
			if cat == nil {
				return domain.ErrNotFound
			}
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		a, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes one of the user's accounts. Tags, transactions, goals'
// target rows, and the chat thread cascade at the schema level.
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := accounts(uow)
		if err != nil {
			return err
		}
		if _, err := ownedAccount(ctx, repo, userID, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func ownedAccount(
	ctx context.Context,
	repo accountrepo.Repository,
	userID, id uint,
) (*dto.AccountRead, error) {
	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
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

func categories(uow repository.UnitOfWork) (categoryrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*categoryrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(categoryrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid category repository type")
	}
	return repo, nil
}
