package models

import "time"

const postStringLength = 15

// Post is sorted newest first everywhere: pub_date DESC, id DESC
type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	PubDate   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time
	Text      string `gorm:"type:text;not null"`
	AuthorID  uint64 `gorm:"not null;index"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64
	Group     *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Image     string `gorm:"type:varchar(255)"` // storage path, empty if none
	Thumb     string `gorm:"type:varchar(255)"`
	// original image size, zero when there is no image
	ImageWidth  uint16
	ImageHeight uint16
}

// String returns the beginning of the text
func (p Post) String() string {
	text := []rune(p.Text)
	if len(text) > postStringLength {
		text = text[:postStringLength]
	}
	return string(text)
}

func (p Post) HasImage() bool {
	return p.Image != ""
}
