package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
)

// UserRepository read-only access to provisioned users
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
