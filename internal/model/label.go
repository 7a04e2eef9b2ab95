package model

import "time"

type Label struct {
	ID          uint64 `gorm:"primaryKey"`
	WorkspaceID uint64 `gorm:"not null;index"`
	Name        string `gorm:"size:64;not null"`
	Color       string `gorm:"size:16;not null;default:'#808080'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
