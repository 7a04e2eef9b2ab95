package model

import "time"

// Comment rows form a reply tree via ParentID; in practice one level deep.
type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CardID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	ParentID  *uint64 `gorm:"index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
