package store

import (
	"context"

	"blog/models"

	"gorm.io/gorm"
)

type CommentStore struct {
	db *gorm.DB
}

func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	return wrap(s.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error, "create comment")
}

func (s *CommentStore) ListByPost(ctx context.Context, postID uint64) (comments []models.Comment, err error) {
	err = s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, wrap(err, "list comments")
}
