package models

import "gorm.io/gorm"

// Migrate creates or updates all tables. Order matters for the foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}
