package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/transaction"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed transaction repository.
func New(db *gorm.DB) transaction.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.TransactionCreate,
) (*dto.TransactionRead, error) {
	row := &Transaction{
		Amount:      create.Amount,
		IsIncome:    create.IsIncome,
		Date:        create.Date,
		Description: create.Description,
		TagID:       create.TagID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(row), nil
}

func (r *repository) Get(
	ctx context.Context,
	id uint,
) (*dto.TransactionRead, error) {
	var row Transaction
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

func (r *repository) ListByTag(
	ctx context.Context,
	tagID uint,
) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	if err := r.db.WithContext(ctx).
		Where("tag_id = ?", tagID).
		Order("date, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(rows), nil
}

func (r *repository) ListByAccount(
	ctx context.Context,
	accountID uint,
) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	if err := r.db.WithContext(ctx).
		Joins("JOIN tags ON tags.id = transactions.tag_id").
		Where("tags.account_id = ?", accountID).
		Order("transactions.date, transactions.id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(rows), nil
}

func (r *repository) ListByUserAndDate(
	ctx context.Context,
	userID uint,
	from, to time.Time,
) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	if err := r.userScope(ctx, userID).
		Where("transactions.date BETWEEN ? AND ?", from, to).
		Order("transactions.date, transactions.id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(rows), nil
}

func (r *repository) ListByUserTypeAndDate(
	ctx context.Context,
	userID uint,
	isIncome bool,
	from, to time.Time,
) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	if err := r.userScope(ctx, userID).
		Where("transactions.is_income = ?", isIncome).
		Where("transactions.date BETWEEN ? AND ?", from, to).
		Order("transactions.date, transactions.id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapModelsToDTOs(rows), nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	update *dto.TransactionUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.IsIncome != nil {
		updates["is_income"] = *update.IsIncome
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id).Error
}

func (r *repository) SumSignedByTag(
	ctx context.Context,
	tagID uint,
) (decimal.Decimal, error) {
	rows, err := r.ListByTag(ctx, tagID)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, tx := range rows {
		if tx.IsIncome {
			sum = sum.Add(tx.Amount)
		} else {
			sum = sum.Sub(tx.Amount)
		}
	}
	return sum, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).Count(&count).Error
	return count, err
}

func (r *repository) userScope(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Transaction{}).
		Joins("JOIN tags ON tags.id = transactions.tag_id").
		Joins("JOIN accounts ON accounts.id = tags.account_id").
		Where("accounts.user_id = ?", userID)
}

func mapModelToDTO(t *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          t.ID,
		Amount:      t.Amount,
		IsIncome:    t.IsIncome,
		Date:        t.Date,
		Description: t.Description,
		TagID:       t.TagID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func mapModelsToDTOs(rows []Transaction) []*dto.TransactionRead {
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result
}

var _ transaction.Repository = (*repository)(nil)
