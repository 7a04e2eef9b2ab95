package model

import "time"

type DigestFrequency string

const (
	DigestNever  DigestFrequency = "never"
	DigestHourly DigestFrequency = "hourly"
	DigestDaily  DigestFrequency = "daily"
	DigestWeekly DigestFrequency = "weekly"
)

// Hours returns the digest cadence threshold in hours, 0 for never.
func (f DigestFrequency) Hours() int {
	switch f {
	case DigestHourly:
		return 1
	case DigestDaily:
		return 24
	case DigestWeekly:
		return 168
	}
	return 0
}

type User struct {
	ID                   uint64          `gorm:"primaryKey"`
	Username             string          `gorm:"uniqueIndex;size:32;not null"`
	Password             string          `gorm:"size:255;not null"`
	Email                string          `gorm:"uniqueIndex;size:64;not null"`
	EmailDigestEnabled   bool            `gorm:"not null;default:true"`
	EmailDigestFrequency DigestFrequency `gorm:"size:16;not null;default:'daily'"`
	LastDigestSentAt     *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
