package models

import "time"

// Comment is displayed in creation order: created_at ASC, id ASC
type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	PostID    uint64    `gorm:"not null;index"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint64    `gorm:"not null"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string    `gorm:"type:text;not null"`
}
