package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AdminUserGormRepository struct {
	db *gorm.DB
}

func NewAdminUserGormRepository(db *gorm.DB) *AdminUserGormRepository {
	return &AdminUserGormRepository{db: db}
}

func (r *AdminUserGormRepository) FindByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AdminUser{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AdminUser{}, err
	}
	return u, nil
}

func (r *AdminUserGormRepository) Create(ctx context.Context, u model.AdminUser) (model.AdminUser, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return model.AdminUser{}, err
	}
	return u, nil
}

func (r *AdminUserGormRepository) ListNotifiableEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&model.AdminUser{}).
		Where("role IN ? AND email <> ''", []model.Role{model.RoleAdmin, model.RoleStaff}).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
