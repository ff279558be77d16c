package models

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (g Group) String() string {
	return g.Title
}
