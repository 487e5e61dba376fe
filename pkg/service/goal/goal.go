// Package goal implements savings goals with polymorphic targets. A target
// tracks either an account's balance or a tag pocket's signed transaction
// sum; progress is recomputed on demand, never incrementally.
package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	accountrepo "github.com/pocketfin/pocketfin/pkg/repository/account"
	goalrepo "github.com/pocketfin/pocketfin/pkg/repository/goal"
	tagrepo "github.com/pocketfin/pocketfin/pkg/repository/tag"
	transactionrepo "github.com/pocketfin/pocketfin/pkg/repository/transaction"
	"github.com/shopspring/decimal"
)

// Service implements goal business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a goal service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create stores a goal with its targets. A goal must track at least one
// account or tag, and every target must resolve to something the user owns.
func (s *Service) Create(
	ctx context.Context,
	userID uint,
	create *dto.GoalCreate,
) (g *dto.GoalRead, err error) {
	if len(create.Targets) == 0 {
		return nil, domain.ErrGoalNeedsTarget
	}
	create.UserID = userID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := validateTargets(ctx, uow, userID, create.Targets); err != nil {
			return err
		}
		repo, err := goals(uow)
		if err != nil {
			return err
		}
		g, err = repo.Create(ctx, create)
		return err
	})
	if err != nil {
		s.logger.Error("Goal create failed", "userID", userID, "error", err)
		return nil, err
	}
	return g, nil
}

// Get returns one of the user's goals with its targets.
func (s *Service) Get(ctx context.Context, userID, id uint) (g *dto.GoalRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err = ownedGoal(ctx, uow, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// List returns every goal the user owns.
func (s *Service) List(ctx context.Context, userID uint) (list []*dto.GoalRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := goals(uow)
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

// Update applies a partial update. A non-nil Targets slice replaces the whole
// target set after revalidating ownership.
func (s *Service) Update(
	ctx context.Context,
	userID, id uint,
	update *dto.GoalUpdate,
) (g *dto.GoalRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ownedGoal(ctx, uow, userID, id); err != nil {
			return err
		}
		if update.Targets != nil {
			if len(update.Targets) == 0 {
				return domain.ErrGoalNeedsTarget
			}
			if err := validateTargets(ctx, uow, userID, update.Targets); err != nil {
				return err
			}
		}
		repo, err := goals(uow)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, id, update); err != nil {
			return err
		}
		g, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes one of the user's goals and its targets.
func (s *Service) Delete(ctx context.Context, userID, id uint) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ownedGoal(ctx, uow, userID, id); err != nil {
			return err
		}
		repo, err := goals(uow)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

// Progress recomputes actual progress from the live targets: account targets
// contribute the account balance, tag targets the signed sum of the pocket's
// transactions. The recomputed value is persisted and returned with the
// goal.
func (s *Service) Progress(ctx context.Context, userID, id uint) (g *dto.GoalRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		g, err = ownedGoal(ctx, uow, userID, id)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, target := range g.Targets {
			contribution, err := targetContribution(ctx, uow, target)
			if err != nil {
				return err
			}
			total = total.Add(contribution)
		}
		repo, err := goals(uow)
		if err != nil {
			return err
		}
		if err := repo.UpdateProgress(ctx, id, total); err != nil {
			return err
		}
		g.ActualProgress = total
		return nil
	})
	if err != nil {
		s.logger.Error("Goal progress failed", "id", id, "error", err)
		return nil, err
	}
	return g, nil
}

func targetContribution(
	ctx context.Context,
	uow repository.UnitOfWork,
	target dto.GoalTargetRead,
) (decimal.Decimal, error) {
	switch target.TargetType {
	case dto.GoalTargetAccount:
		repo, err := accounts(uow)
		if err != nil {
			return decimal.Zero, err
		}
		a, err := repo.Get(ctx, target.TargetID)
		if err != nil {
			return decimal.Zero, err
		}
		if a == nil {
			// Target deleted since goal creation; contributes nothing.
			return decimal.Zero, nil
		}
		return a.Money, nil
	case dto.GoalTargetTag:
		repo, err := transactions(uow)
		if err != nil {
			return decimal.Zero, err
		}
		return repo.SumSignedByTag(ctx, target.TargetID)
	default:
		return decimal.Zero, fmt.Errorf("unknown goal target type %q", target.TargetType)
	}
}

// validateTargets checks each target resolves to an account or tag the user
// owns.
func validateTargets(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uint,
	targets []dto.GoalTargetSpec,
) error {
	arepo, err := accounts(uow)
	if err != nil {
		return err
	}
	trepo, err := tags(uow)
	if err != nil {
		return err
	}
	for _, target := range targets {
		switch target.TargetType {
		case dto.GoalTargetAccount:
			a, err := arepo.Get(ctx, target.TargetID)
			if err != nil {
				return err
			}
			if a == nil || a.UserID != userID {
				return domain.ErrNotFound
			}
		case dto.GoalTargetTag:
			t, err := trepo.Get(ctx, target.TargetID)
			if err != nil {
				return err
			}
			if t == nil {
				return domain.ErrNotFound
			}
			a, err := arepo.Get(ctx, t.AccountID)
			if err != nil {
				return err
			}
			if a == nil || a.UserID != userID {
				return domain.ErrNotFound
			}
		default:
			return domain.ErrValidation
		}
	}
	return nil
}

func ownedGoal(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID, id uint,
) (*dto.GoalRead, error) {
	repo, err := goals(uow)
	if err != nil {
		return nil, err
	}
	g, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil || g.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func goals(uow repository.UnitOfWork) (goalrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*goalrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(goalrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid goal repository type")
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
