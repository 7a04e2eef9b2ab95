package model

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleGuest  Role = "guest"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

type Workspace struct {
	ID            uint64     `gorm:"primaryKey"`
	Name          string     `gorm:"size:64;not null"`
	Visibility    Visibility `gorm:"size:16;not null;default:'private'"`
	OwnerID       uint64     `gorm:"not null;index"`
	Plan          string     `gorm:"size:32;not null;default:'free'"`
	PlanExpiresAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WorkspaceMember holds exactly one row per (workspace, user); exactly one
// owner row exists per workspace, mirroring Workspace.OwnerID.
type WorkspaceMember struct {
	ID          uint64 `gorm:"primaryKey"`
	WorkspaceID uint64 `gorm:"not null;index;uniqueIndex:uk_workspace_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_workspace_user"`
	Role        Role   `gorm:"size:16;not null;default:'member'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
