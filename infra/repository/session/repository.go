package session

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed session repository.
func New(db *gorm.DB) session.Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(
	ctx context.Context,
	upsert *dto.SessionUpsert,
) error {
	row := &Session{
		UserID:       upsert.UserID,
		DeviceID:     upsert.DeviceID,
		RefreshToken: upsert.RefreshToken,
		UserAgent:    upsert.UserAgent,
		IP:           upsert.IP,
		ExpiresAt:    upsert.ExpiresAt,
		Revoked:      false,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"refresh_token", "user_agent", "ip", "expires_at", "revoked", "updated_at",
		}),
	}).Create(row).Error
}

func (r *repository) Revoke(
	ctx context.Context,
	userID uint,
	deviceID string,
) error {
	return r.db.WithContext(ctx).Model(&Session{}).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		Update("revoked", true).Error
}

func (r *repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]*dto.SessionRead, error) {
	var rows []Session
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.SessionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapSessionToDTO(&rows[i]))
	}
	return result, nil
}

func mapSessionToDTO(s *Session) *dto.SessionRead {
	return &dto.SessionRead{
		ID:        s.ID,
		UserID:    s.UserID,
		DeviceID:  s.DeviceID,
		UserAgent: s.UserAgent,
		IP:        s.IP,
		ExpiresAt: s.ExpiresAt,
		Revoked:   s.Revoked,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type resetRepository struct {
	db *gorm.DB
}

// NewReset returns a GORM-backed password-reset repository.
func NewReset(db *gorm.DB) session.ResetRepository {
	return &resetRepository{db: db}
}

func (r *resetRepository) Create(
	ctx context.Context,
	create *dto.PasswordResetCreate,
) error {
	row := &PasswordReset{
		Token:     create.Token,
		UserID:    create.UserID,
		ExpiresAt: create.ExpiresAt,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *resetRepository) GetByToken(
	ctx context.Context,
	token string,
) (*dto.PasswordResetRead, error) {
	var row PasswordReset
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.PasswordResetRead{
		ID:        row.ID,
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		Used:      row.Used,
	}, nil
}

func (r *resetRepository) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&PasswordReset{}).
		Where("id = ?", id).
		Update("used", true).Error
}

var (
	_ session.Repository      = (*repository)(nil)
	_ session.ResetRepository = (*resetRepository)(nil)
)
