package store

import (
	"context"

	"blog/models"

	"gorm.io/gorm"
)

type GroupStore struct {
	db *gorm.DB
}

func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	return wrap(s.db.WithContext(ctx).Create(group).Error, "create group")
}

func (s *GroupStore) GetByID(ctx context.Context, id uint64) (group models.Group, err error) {
	err = s.db.WithContext(ctx).First(&group, id).Error
	return group, wrap(err, "get group")
}

func (s *GroupStore) GetBySlug(ctx context.Context, slug string) (group models.Group, err error) {
	err = s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	return group, wrap(err, "get group by slug")
}

func (s *GroupStore) List(ctx context.Context) (groups []models.Group, err error) {
	err = s.db.WithContext(ctx).Order("title ASC, id ASC").Find(&groups).Error
	return groups, wrap(err, "list groups")
}
