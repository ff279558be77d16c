package store

import (
	"context"
	"time"

	"blog/models"

	"gorm.io/gorm"
)

const postOrder = "posts.pub_date DESC, posts.id DESC"

type PostStore struct {
	db *gorm.DB
}

func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	return wrap(s.db.WithContext(ctx).Omit("Author", "Group").Create(post).Error, "create post")
}

func (s *PostStore) GetByID(ctx context.Context, id uint64) (post models.Post, err error) {
	err = s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	return post, wrap(err, "get post")
}

// Update saves the editable fields only, author and pub_date never change
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select("Text", "GroupID", "Image", "Thumb", "ImageWidth", "ImageHeight", "UpdatedAt").
		Updates(&models.Post{
			Text:        post.Text,
			GroupID:     post.GroupID,
			Image:       post.Image,
			Thumb:       post.Thumb,
			ImageWidth:  post.ImageWidth,
			ImageHeight: post.ImageHeight,
			UpdatedAt:   post.UpdatedAt,
		}).Error
	return wrap(err, "update post")
}

func (s *PostStore) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(&models.Post{})
	if filter.AuthorID != 0 {
		tx = tx.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.GroupID != 0 {
		tx = tx.Where("posts.group_id = ?", filter.GroupID)
	}
	if filter.FollowerID != 0 {
		tx = tx.Where("posts.author_id IN (?)",
			s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", filter.FollowerID))
	}
	return tx
}

func (s *PostStore) Count(ctx context.Context, filter PostFilter) (count int64, err error) {
	err = s.filtered(ctx, filter).Count(&count).Error
	return count, wrap(err, "count posts")
}

func (s *PostStore) List(ctx context.Context, filter PostFilter, offset, limit int) (posts []models.Post, err error) {
	err = s.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order(postOrder).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, wrap(err, "list posts")
}
