package tag

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/tag"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed tag repository.
func New(db *gorm.DB) tag.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.TagCreate,
) (*dto.TagRead, error) {
	row := &Tag{
		Name:        create.Name,
		Description: create.Description,
		AccountID:   create.AccountID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(row), nil
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.TagRead, error) {
	var row Tag
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

func (r *repository) ListByAccount(
	ctx context.Context,
	accountID uint,
) ([]*dto.TagRead, error) {
	var rows []Tag
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.TagRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	update *dto.TagUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Tag{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Tag{}, "id = ?", id).Error
}

func mapModelToDTO(t *Tag) *dto.TagRead {
	return &dto.TagRead{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		AccountID:   t.AccountID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

var _ tag.Repository = (*repository)(nil)
