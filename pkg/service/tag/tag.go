// Package tag provides tag-pocket management. A tag belongs to an account;
// ownership flows through the account's owner, and foreign tags read as not
// found.
package tag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	accountrepo "github.com/pocketfin/pocketfin/pkg/repository/account"
	tagrepo "github.com/pocketfin/pocketfin/pkg/repository/tag"
)

// Service implements tag-pocket business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a tag service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create adds a tag pocket to one of the user's accounts.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	create *dto.TagCreate,
) (t *dto.TagRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := requireOwnedAccount(ctx, uow, userID, create.AccountID); err != nil {
			return err
		}
		repo, err := tags(uow)
		if err != nil {
			return err
		}
		t, err = repo.Create(ctx, create)
		return err
	})
	if err != nil {
		s.logger.Error("Tag create failed", "userID", userID, "error", err)
		return nil, err
	}
	return t, nil
}

// Get returns one of the user's tags.
func (s *Service) Get(ctx context.Context, userID, id uint) (t *dto.TagRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		t, err = ownedTag(ctx, uow, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByAccount returns the tags of one of the user's accounts.
func (s *Service) ListByAccount(
	ctx context.Context,
	userID, accountID uint,
) (list []*dto.TagRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := requireOwnedAccount(ctx, uow, userID, accountID); err != nil {
			return err
		}
		repo, err := tags(uow)
		if err != nil {
			return err
		}
		list, err = repo.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies a partial update to one of the user's tags.
func (s *Service) Update(
	ctx context.Context,
	userID, id uint,
	update *dto.TagUpdate,
) (t *dto.TagRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ownedTag(ctx, uow, userID, id); err != nil {
			return err
		}
		repo, err := tags(uow)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		t, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes one of the user's tags; its transactions cascade.
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ownedTag(ctx, uow, userID, id); err != nil {
			return err
		}
		repo, err := tags(uow)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func ownedTag(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, id uint,
) (*dto.TagRead, error) {
	repo, err := tags(uow)
	if err != nil {
		return nil, err
	}
	t, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := requireOwnedAccount(ctx, uow, userID, t.AccountID); err != nil {
		return nil, err
	}
	return t, nil
}

func requireOwnedAccount(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, accountID uint,
) error {
	repo, err := accounts(uow)
	if err != nil {
		return err
	}
	a, err := repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if a == nil || a.UserID != userID {
		return domain.ErrNotFound
	}
	return nil
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
