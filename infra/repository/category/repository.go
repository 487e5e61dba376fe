package category

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/category"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed category repository.
func New(db *gorm.DB) category.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.CategoryCreate,
) (*dto.CategoryRead, error) {
	row := &Category{Tipo: create.Tipo}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return &dto.CategoryRead{ID: row.ID, Tipo: row.Tipo}, nil
}

func (r *repository) Get(
	ctx context.Context,
	id uint,
) (*dto.CategoryRead, error) {
	var row Category
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.CategoryRead{ID: row.ID, Tipo: row.Tipo}, nil
}

func (r *repository) List(ctx context.Context) ([]*dto.CategoryRead, error) {
	var rows []Category
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.CategoryRead, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.CategoryRead{ID: row.ID, Tipo: row.Tipo})
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	update *dto.CategoryUpdate,
) error {
	if update.Tipo == nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Category{}).
		Where("id = ?", id).
		Update("tipo", *update.Tipo).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id).Error
}

var _ category.Repository = (*repository)(nil)
