package store

import (
	"context"

	"blog/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint64) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint64) (models.Group, error)
	GetBySlug(ctx context.Context, slug string) (models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
}

// PostFilter narrows a post listing. Zero fields are ignored.
type PostFilter struct {
	AuthorID   uint64
	GroupID    uint64
	FollowerID uint64 // only posts by authors this user follows
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint64) (models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Count(ctx context.Context, filter PostFilter) (int64, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]models.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint64) ([]models.Comment, error)
}

type FollowRepository interface {
	// Follow returns false when nothing changed (self-follow or existing edge)
	Follow(ctx context.Context, userID, authorID uint64) (bool, error)
	Unfollow(ctx context.Context, userID, authorID uint64) error
	Exists(ctx context.Context, userID, authorID uint64) (bool, error)
	CountFollowers(ctx context.Context, authorID uint64) (int64, error)
	CountFollowing(ctx context.Context, userID uint64) (int64, error)
}

// Store bundles the gorm backed repositories
type Store struct {
	Users    *UserStore
	Groups   *GroupStore
	Posts    *PostStore
	Comments *CommentStore
	Follows  *FollowStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:    &UserStore{db: db},
		Groups:   &GroupStore{db: db},
		Posts:    &PostStore{db: db},
		Comments: &CommentStore{db: db},
		Follows:  &FollowStore{db: db},
	}
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrap(err, msg)
}
