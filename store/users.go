package store

import (
	"context"

	"blog/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

// Create returns ErrAlreadyExists when the username is taken, including a
// concurrent signup that got in between a check and the insert
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || s.taken(ctx, user.Username)) {
		return ErrAlreadyExists
	}
	return wrap(err, "create user")
}

// taken covers drivers that do not translate unique violations
func (s *UserStore) taken(ctx context.Context, username string) bool {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return err == nil && count > 0
}

func (s *UserStore) GetByID(ctx context.Context, id uint64) (user models.User, err error) {
	err = s.db.WithContext(ctx).First(&user, id).Error
	return user, wrap(err, "get user")
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (user models.User, err error) {
	err = s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, wrap(err, "get user by username")
}
