package user

import (
	"context"
	"errors"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/dto"
	"github.com/pocketfin/pocketfin/pkg/repository/user"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM-backed user repository.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) (*dto.UserRead, error) {
	u := &User{
		Email:    create.Email,
		Password: create.Password,
		Nickname: create.Nickname,
		RoleID:   create.RoleID,
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, u.ID)
}

func (r *repository) Get(
	ctx context.Context,
	id uint,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context) ([]*dto.UserRead, error) {
	var users []User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Order("id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

func (r *repository) ListByRole(
	ctx context.Context,
	role domain.Role,
) ([]*dto.UserRead, error) {
	var users []User
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", role.String()).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.UserRead, 0, len(users))
	for i := range users {
		result = append(result, mapModelToDTO(&users[i]))
	}
	return result, nil
}

func (r *repository) Update(
	ctx context.Context,
	id uint,
	update *dto.UserUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	if update.Nickname != nil {
		updates["nickname"] = *update.Nickname
	}
	if update.Disabled != nil {
		updates["disabled"] = *update.Disabled
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) SetRole(
	ctx context.Context,
	id uint,
	role domain.Role,
) error {
	roleID, err := r.EnsureRole(ctx, role)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("role_id", roleID).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&count).Error
	return count, err
}

func (r *repository) EnsureRole(
	ctx context.Context,
	role domain.Role,
) (uint, error) {
	var row Role
	err := r.db.WithContext(ctx).
		Where("name = ?", role.String()).
		First(&row).Error
	if err == nil {
		return row.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	row = Role{Name: role.String()}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func mapModelToDTO(u *User) *dto.UserRead {
	role, ok := domain.ParseRole(u.Role.Name)
	if !ok {
		role = domain.RoleUser
	}
	return &dto.UserRead{
		ID:             u.ID,
		Email:          u.Email,
		HashedPassword: u.Password,
		Nickname:       u.Nickname,
		Role:           role,
		Disabled:       u.Disabled,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)
