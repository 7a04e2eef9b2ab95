package model

import "time"

// ActivityLog is append-only: rows are never updated and only removed by the
// retention sweep.
type ActivityLog struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"not null;index"`
	Action     string `gorm:"size:64;not null"`
	EntityType string `gorm:"size:32;not null"`
	EntityID   uint64 `gorm:"not null"`
	Metadata   string `gorm:"type:json"`
	CreatedAt  time.Time `gorm:"index"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

// ActivityOutbox mirrors activity events for asynchronous relay to Kafka.
type ActivityOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	Action    string `gorm:"size:64;not null"`
	UserID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending 1=sent 2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ActivityOutbox) TableName() string { return "activity_outbox" }
