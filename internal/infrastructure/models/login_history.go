package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginHistory rows are never updated or deleted after insert.
type LoginHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID *uuid.UUID `gorm:"type:uuid;index"`
	Email     string     `gorm:"type:varchar(255);not null;index"`
	IP        string     `gorm:"type:varchar(45);column:ip"`
	UserAgent string     `gorm:"type:varchar(512)"`
	Success   bool       `gorm:"not null"`
	LoginTime time.Time  `gorm:"not null;index"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}
