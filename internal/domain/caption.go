package domain

import (
	"time"

	"gorm.io/gorm"
)

// BroadcastSession struct - durable record of one live broadcast
type BroadcastSession struct {
	ID        string     `gorm:"type:uuid;primary_key;"`
	CreatedAt *time.Time `gorm:"type:timestamp"`
	EndedAt   *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (s *BroadcastSession) TableName() string {
	return "broadcast_sessions"
}

// Caption struct - durable record of one finalized caption with its
// translations serialized as JSON
type Caption struct {
	ID           uint       `gorm:"primary_key;auto_increment;"`
	SessionID    string     `gorm:"type:uuid;index;not null;"`
	Original     string     `gorm:"type:text;not null;"`
	Translations string     `gorm:"type:jsonb"`
	SpokenAt     *time.Time `gorm:"type:timestamp;not null;"`
	CreatedAt    *time.Time `gorm:"type:timestamp"`
}

// TableName func
func (c *Caption) TableName() string {
	return "captions"
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.AutoMigrate(&BroadcastSession{}, &Caption{})
}
