package goal

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/goal"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed goal repository.
func New(db *gorm.DB) goal.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.GoalCreate,
) (*dto.GoalRead, error) {
	row := &Goal{
		Description:    create.Description,
		StartDate:      create.StartDate,
		EndDate:        create.EndDate,
		MaxMoney:       create.MaxMoney,
		ActualProgress: decimal.Zero,
		UserID:         create.UserID,
	}
	for _, t := range create.Targets {
		row.Targets = append(row.Targets, GoalTarget{
			TargetType: t.TargetType,
			TargetID:   t.TargetID,
		})
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return mapModelToDTO(row), nil
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.GoalRead, error) {
	var row Goal
	if err := r.db.WithContext(ctx).
		Preload("Targets").
		First(&row, "id = ?", id).Error; err != nil {
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
) ([]*dto.GoalRead, error) {
	var rows []Goal
	if err := r.db.WithContext(ctx).
		Preload("Targets").
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.GoalRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	update *dto.GoalUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.StartDate != nil {
		updates["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		updates["end_date"] = *update.EndDate
	}
	if update.MaxMoney != nil {
		updates["max_money"] = *update.MaxMoney
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&Goal{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return err
		}
	}
	if update.Targets == nil {
		return nil
	}
	// Target replacement is not additive: drop every prior row first.
	if err := r.db.WithContext(ctx).
		Where("goal_id = ?", id).
		Delete(&GoalTarget{}).Error; err != nil {
		return err
	}
	rows := make([]GoalTarget, 0, len(update.Targets))
	for _, t := range update.Targets {
		rows = append(rows, GoalTarget{
			GoalID:     id,
			TargetType: t.TargetType,
			TargetID:   t.TargetID,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) UpdateProgress(
	ctx context.Context,
	id uint,
	progress decimal.Decimal,
) error {
	return r.db.WithContext(ctx).Model(&Goal{}).
		Where("id = ?", id).
		Update("actual_progress", progress).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Goal{}, "id = ?", id).Error
}

func mapModelToDTO(g *Goal) *dto.GoalRead {
	targets := make([]dto.GoalTargetRead, 0, len(g.Targets))
	for _, t := range g.Targets {
		targets = append(targets, dto.GoalTargetRead{
			ID:         t.ID,
			TargetType: t.TargetType,
			TargetID:   t.TargetID,
		})
	}
	return &dto.GoalRead{
		ID:             g.ID,
		Description:    g.Description,
		StartDate:      g.StartDate,
		EndDate:        g.EndDate,
		MaxMoney:       g.MaxMoney,
		ActualProgress: g.ActualProgress,
		UserID:         g.UserID,
		Targets:        targets,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

var _ goal.Repository = (*repository)(nil)
