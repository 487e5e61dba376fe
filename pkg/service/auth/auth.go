// Package auth provides signup, login, session logging, and the password
// recovery flow.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository"
	sessionrepo "github.com/pocketfin/pocketfin/pkg/repository/session"
	userrepo "github.com/pocketfin/pocketfin/pkg/repository/user"
	"github.com/pocketfin/pocketfin/pkg/utils"
)

const (
	resetTokenTTL   = time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// Service implements authentication business logic on top of the unit of
// work.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// DeviceLogin carries the request metadata recorded in the session log.
type DeviceLogin struct {
	DeviceID  string
	UserAgent string
	IP        string
}

// Signup registers a new user with the default role. Duplicate emails are
// rejected with domain.ErrEmailTaken.
func (s *Service) Signup(
	ctx context.Context,
	email, password, nickname string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Signup", "email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailTaken
		}
		roleID, err := repo.EnsureRole(ctx, domain.RoleUser)
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
		log.Error("Signup failed", "error", err)
		return nil, err
	}
	log.Info("Signup successful", "userID", u.ID)
	return u, nil
}

// Login authenticates against the stored credential. Unknown emails and bad
// passwords are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login", "email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := users(uow)
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		// Burn a hash comparison on unknown emails to keep timing flat.
		const dummyHash = "$2a$14$WK2vVJ3QwOSJUp8YvXqGEeZ1rG5rBeyRj2X0L9pC0sFqDmEwT3hgm"
		if u == nil || u.Disabled {
			_ = utils.CheckPasswordHash(password, dummyHash)
			u = nil
			return domain.ErrUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			u = nil
			return domain.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}
	log.Info("Login successful", "userID", u.ID)
	return u, nil
}

// AdminLogin authenticates and additionally requires an elevated role.
func (s *Service) AdminLogin(
	ctx context.Context,
	email, password string,
) (*dto.UserRead, error) {
	u, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !u.Role.IsAdmin() {
		s.logger.Warn("AdminLogin rejected", "userID", u.ID, "role", u.Role)
		return nil, domain.ErrForbidden
	}
	return u, nil
}

// RecordLogin upserts the device session row used as the login log.
func (s *Service) RecordLogin(
	ctx context.Context,
	userID uint,
	login DeviceLogin,
) error {
	deviceID := login.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := sessions(uow)
		if err != nil {
			return err
		}
		return repo.Upsert(ctx, &dto.SessionUpsert{
			UserID:       userID,
			DeviceID:     deviceID,
			RefreshToken: uuid.NewString(),
			UserAgent:    login.UserAgent,
			IP:           login.IP,
			ExpiresAt:    time.Now().Add(refreshTokenTTL),
		})
	})
}

// RevokeSession marks the device session revoked on logout.
func (s *Service) RevokeSession(
	ctx context.Context,
	userID uint,
	deviceID string,
) error {
	if deviceID == "" {
		return nil
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := sessions(uow)
		if err != nil {
			return err
		}
		return repo.Revoke(ctx, userID, deviceID)
	})
}

// GenerateToken signs a user-realm token.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	return s.signToken(u, s.cfg.Secret)
}

// GenerateAdminToken signs an admin-realm token with the admin secret.
func (s *Service) GenerateAdminToken(u *dto.UserRead) (string, error) {
	return s.signToken(u, s.cfg.AdminSecretOrFallback())
}

func (s *Service) signToken(u *dto.UserRead, secret string) (string, error) {
	if secret == "" {
		return "", domain.ErrSecretNotConfigured
	}
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = u.ID
	claims["email"] = u.Email
	claims["role"] = u.Role.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(secret))
}

// Recover opens a password-reset window when the email is registered. The
// caller cannot tell whether it was: unknown emails return nil as well.
func (s *Service) Recover(ctx context.Context, email string) (err error) {
	log := s.logger.With("context", "Recover")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		urepo, err := users(uow)
		if err != nil {
			return err
		}
		u, err := urepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u == nil {
			// Enumeration mitigation: same outcome as the happy path.
			return nil
		}
		rrepo, err := resets(uow)
		if err != nil {
			return err
		}
		return rrepo.Create(ctx, &dto.PasswordResetCreate{
			Token:     uuid.NewString(),
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		})
	})
	if err != nil {
		log.Error("Recover failed", "error", err)
	}
	return err
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *Service) ResetPassword(
	ctx context.Context,
	token, newPassword string,
) error {
	if !utils.IsStrongPassword(newPassword) {
		return domain.ErrWeakPassword
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		rrepo, err := resets(uow)
		if err != nil {
			return err
		}
		reset, err := rrepo.GetByToken(ctx, token)
		if err != nil {
			return err
		}
		if reset == nil || reset.Used || time.Now().After(reset.ExpiresAt) {
			return domain.ErrResetTokenInvalid
		}
		hashed, err := utils.HashPassword(newPassword)
		if err != nil {
			return err
		}
		urepo, err := users(uow)
		if err != nil {
			return err
		}
		if err := urepo.Update(ctx, reset.UserID, &dto.UserUpdate{
			Password: &hashed,
		}); err != nil {
			return err
		}
		return rrepo.MarkUsed(ctx, reset.ID)
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

func resets(uow repository.UnitOfWork) (sessionrepo.ResetRepository, error) {
	repoAny, err := uow.GetRepository((*sessionrepo.ResetRepository)(nil))
	if err != nil {
		return nil, err
	}
	repo, ok := repoAny.(sessionrepo.ResetRepository)
	if !ok {
		return nil, fmt.Errorf("invalid reset repository type")
	}
	return repo, nil
}
