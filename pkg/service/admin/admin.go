// Package admin provides the administrative surface: login log, user
// moderation, usage stats, and admin promotion.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	sessionrepo "github.com/pocketfin/pocketfin/pkg/repository/session"
	transactionrepo "github.com/pocketfin/pocketfin/pkg/repository/transaction"
	userrepo "github.com/pocketfin/pocketfin/pkg/repository/user"
	"github.com/pocketfin/pocketfin/pkg/utils"
)

// Service implements admin business logic.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an admin service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Stats aggregates platform usage counters.
type Stats struct {
	Count int64 `json:"count"`
}

// LoginLogs pages through session rows, newest first.
func (s *Service) LoginLogs(
	ctx context.Context,
	page, pageSize int,
) (logs []*dto.SessionRead, err error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := sessions(uow)
		if err != nil {
			return err
		}
		logs, err = repo.List(ctx, page, pageSize)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListUsers returns every registered user.
func (s *Service) ListUsers(ctx context.Context) (list []*dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
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

// SetUserDisabled soft-deletes (disabled=true) or restores a user account.
// The row and its data survive; only login is blocked.
func (s *Service) SetUserDisabled(
	ctx context.Context,
	id uint,
	disabled bool,
) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
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
		if err := repo.Update(ctx, id, &dto.UserUpdate{Disabled: &disabled}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("User moderation failed", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("User moderated", "id", id, "disabled", disabled)
	return u, nil
}

// UserCount returns the number of registered users.
func (s *Service) UserCount(ctx context.Context) (stats *Stats, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		stats = &Stats{Count: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// TransactionCount returns the number of ledger rows platform-wide.
func (s *Service) TransactionCount(ctx context.Context) (stats *Stats, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := transactions(uow)
		if err != nil {
			return err
		}
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		stats = &Stats{Count: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ListAdmins returns users holding the admin or super_admin role.
func (s *Service) ListAdmins(ctx context.Context) (list []*dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		admins, err := repo.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		supers, err := repo.ListByRole(ctx, domain.RoleSuperAdmin)
		if err != nil {
			return err
		}
		list = append(admins, supers...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// PromoteAdmin grants the admin role. An existing user is promoted in place;
// an unknown email creates the account with the given credentials, so a
// super-admin can bootstrap new admins directly.
func (s *Service) PromoteAdmin(
	ctx context.Context,
	email, password, nickname string,
) (*dto.UserRead, error) {
	return s.GrantRole(ctx, email, password, nickname, domain.RoleAdmin)
}

// GrantRole assigns an elevated role, creating the user when the email is
// unknown. Also used by the operator CLI to bootstrap the first super-admin.
func (s *Service) GrantRole(
	ctx context.Context,
	email, password, nickname string,
	role domain.Role,
) (u *dto.UserRead, err error) {
	if !role.IsAdmin() {
		return nil, domain.ErrValidation
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		existing, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := repo.SetRole(ctx, existing.ID, role); err != nil {
				return err
			}
			u, err = repo.Get(ctx, existing.ID)
			return err
		}
		if password == "" {
			return domain.ErrValidation
		}
		if !utils.IsStrongPassword(password) {
			return domain.ErrWeakPassword
		}
		roleID, err := repo.EnsureRole(ctx, role)
		if err != nil {
			return err
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		u, err = repo.Create(ctx, &dto.UserCreate{
			Email:    email,
			Password: hashed,
			Nickname: nickname,
			RoleID:   roleID,
		})
		return err
	})
	if err != nil {
		s.logger.Error("Admin promotion failed", "email", email, "error", err)
		return nil, err
	}
	s.logger.Info("Admin granted", "userID", u.ID)
	return u, nil
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

func sessions(uow repository.UnitOfWork) (sessionrepo.Repository, error) {
	repoAny, err := uow.GetRepository((*sessionrepo.Repository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(sessionrepo.Repository)
	if !ok {
		return nil, fmt.Errorf("invalid session repository type")
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
