package account

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/account"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed account repository.
func New(db *gorm.DB) account.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.AccountCreate,
) (*dto.AccountRead, error) {
	row := &Account{
		Name:       create.Name,
		Money:      create.Money,
		UserID:     create.UserID,
		CategoryID: create.CategoryID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(row), nil
}

func (r *repository) Get(
	ctx context.Context,
	id uint,
) (*dto.AccountRead, error) {
	var row Account
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uint,
) ([]*dto.AccountRead, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	update *dto.AccountUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Money != nil {
		updates["money"] = *update.Money
	}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateMoney(
	ctx context.Context,
	id uint,
	money decimal.Decimal,
) error {
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("money", money).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id).Error
}

func mapModelToDTO(a *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:         a.ID,
		Name:       a.Name,
		Money:      a.Money,
		UserID:     a.UserID,
		CategoryID: a.CategoryID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

var _ account.Repository = (*repository)(nil)
