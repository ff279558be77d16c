package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt time.Time
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex"`
	FullName  string `gorm:"type:varchar(150)"`
	Password  string `gorm:"type:varchar(128)" json:"-"`
}

func (u User) String() string {
	return u.Username
}

func (u *User) SetPassword(plainTextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plainTextPassword string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) == nil
}

// DisplayName is what templates show next to posts
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
