package store

import (
	"context"

	"blog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowStore struct {
	db *gorm.DB
}

func (s *FollowStore) Follow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == authorID {
		return false, nil
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Author").
		Create(&models.Follow{UserID: userID, AuthorID: authorID})
	if result.Error != nil {
		return false, wrap(result.Error, "follow")
	}
	return result.RowsAffected > 0, nil
}

// Unfollow succeeds when there is no edge
func (s *FollowStore) Unfollow(ctx context.Context, userID, authorID uint64) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
	return wrap(err, "unfollow")
}

func (s *FollowStore) Exists(ctx context.Context, userID, authorID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, wrap(err, "follow exists")
}

func (s *FollowStore) CountFollowers(ctx context.Context, authorID uint64) (count int64, err error) {
	err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, wrap(err, "count followers")
}

func (s *FollowStore) CountFollowing(ctx context.Context, userID uint64) (count int64, err error) {
	err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, wrap(err, "count following")
}
