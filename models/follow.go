package models

import "time"

// Follow is a directed edge: User follows Author. Self-follows and
// duplicates are rejected by the database.
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint64 `gorm:"not null;uniqueIndex:uniq_user_author,priority:1;check:chk_follow_not_self,user_id <> author_id"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID  uint64 `gorm:"not null;uniqueIndex:uniq_user_author,priority:2;index"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
