package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Card struct {
	ID          uint64   `gorm:"primaryKey"`
	BoardID     uint64   `gorm:"not null;index"`
	ListID      uint64   `gorm:"not null;index"`
	Title       string   `gorm:"size:200;not null"`
	Description string   `gorm:"type:text"`
	KeySeq      uint64   `gorm:"not null"` // per-board sequence, never reused
	OrderIdx    int      `gorm:"not null;default:0"`
	Priority    Priority `gorm:"size:16;not null;default:'medium'"`
	StartDate   *time.Time
	DueDate     *time.Time
	ArchivedAt  *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CardMember struct {
	ID        uint64 `gorm:"primaryKey"`
	CardID    uint64 `gorm:"not null;index;uniqueIndex:uk_card_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_card_user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CardLabel struct {
	ID        uint64 `gorm:"primaryKey"`
	CardID    uint64 `gorm:"not null;index;uniqueIndex:uk_card_label"`
	LabelID   uint64 `gorm:"not null;index;uniqueIndex:uk_card_label"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
