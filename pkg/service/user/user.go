// Package user provides profile read/update/delete for the authenticated
// caller.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	userrepo "github.com/pocketfin/pocketfin/pkg/repository/user"
	"github.com/pocketfin/pocketfin/pkg/utils"
)

// Service implements profile business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Get returns the user's profile.
func (s *Service) Get(ctx context.Context, id uint) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update applies a partial profile update. Email changes enforce uniqueness;
// password changes are re-hashed.
func (s *Service) Update(
	ctx context.Context,
	id uint,
	update *dto.UserUpdate,
) (*dto.UserRead, error) {
	var updated *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		current, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if update.Email != nil && *update.Email != current.Email {
			other, err := repo.GetByEmail(ctx, *update.Email)
			if err != nil {
				return err
			}
			if other != nil {
				return domain.ErrEmailTaken
			}
		}
		if update.Password != nil {
			if !utils.IsStrongPassword(*update.Password) {
				return domain.ErrWeakPassword
			}
			hashed, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			update.Password = &hashed
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		updated, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("Profile update failed", "userID", id, "error", err)
		return nil, err
	}
	return updated, nil
}

// Delete removes the user permanently. Owned rows cascade at the schema
// level.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		return repo.Delete(ctx, id)
	})
}

func users(uow repository.UnitOfWork) (userrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*userrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(userrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid user repository type")
	}
	return repo, nil
}
