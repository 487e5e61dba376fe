// Package category provides CRUD for the category lookup table. Categories
// are global, not owner-scoped.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	categoryrepo "github.com/pocketfin/pocketfin/pkg/repository/category"
)

// Service implements category business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a category service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

func (s *Service) Create(
	ctx context.Context,
	create *dto.CategoryCreate,
) (c *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := categories(uow)
		if err != nil {
			return err
		}
		c, err = repo.Create(ctx, create)
		return err
	})
	if err != nil {
		s.logger.Error("Category create failed", "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id uint) (c *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := categories(uow)
		if err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) (list []*dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := categories(uow)
		if err != nil {
			return err
		}
		list, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Update(
	ctx context.Context,
	id uint,
	update *dto.CategoryUpdate,
) (c *dto.CategoryRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := categories(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := categories(uow)
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return repo.Delete(ctx, id)
	})
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
