package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
