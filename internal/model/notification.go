package model

import "time"

type NotificationType string

const (
	NotifyCardAssigned NotificationType = "card_assigned"
	NotifyCommentAdded NotificationType = "comment_added"
	NotifyInvitation   NotificationType = "workspace_invitation"
)

type Notification struct {
	ID         uint64           `gorm:"primaryKey"`
	ReceiverID uint64           `gorm:"not null;index"`
	ActorID    uint64           `gorm:"not null"`
	Type       NotificationType `gorm:"size:32;not null"`
	EntityType string           `gorm:"size:32;not null"`
	EntityID   uint64           `gorm:"not null"`
	Message    string           `gorm:"size:255;not null"`
	IsRead     bool             `gorm:"not null;default:false"`
	EmailedAt  *time.Time       `gorm:"index"` // nil = not yet included in a digest
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
