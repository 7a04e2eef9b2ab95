package model

import "time"

type BoardMode string

const (
	BoardPrivate   BoardMode = "private"
	BoardWorkspace BoardMode = "workspace"
	BoardPublic    BoardMode = "public"
)

type Board struct {
	ID          uint64    `gorm:"primaryKey"`
	WorkspaceID uint64    `gorm:"not null;index;uniqueIndex:uk_workspace_board_name"`
	Name        string    `gorm:"size:128;not null;uniqueIndex:uk_workspace_board_name"`
	KeySlug     string    `gorm:"size:16;not null"`
	Mode        BoardMode `gorm:"size:16;not null;default:'workspace'"`
	IsPinned    bool      `gorm:"not null;default:false"`
	ArchivedAt  *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type List struct {
	ID        uint64 `gorm:"primaryKey"`
	BoardID   uint64 `gorm:"not null;index"`
	Name      string `gorm:"size:128;not null"`
	OrderIdx  int    `gorm:"not null;default:0"`
	IsDone    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
