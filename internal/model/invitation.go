package model

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationExpired  InvitationStatus = "expired"
)

// WorkspaceInvitation: at most one pending row per (workspace, email),
// enforced by the service, not the schema.
type WorkspaceInvitation struct {
	ID          uint64           `gorm:"primaryKey"`
	WorkspaceID uint64           `gorm:"not null;index"`
	Email       string           `gorm:"size:64;not null;index"`
	Role        Role             `gorm:"size:16;not null;default:'member'"`
	Status      InvitationStatus `gorm:"size:16;not null;default:'pending'"`
	InviterID   uint64           `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
