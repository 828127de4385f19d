package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Token     string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	IsActive  bool       `gorm:"not null;default:true"`
	ExpiresAt time.Time  `gorm:"not null"`
	LastLogin *time.Time `gorm:"type:timestamp"`
	LastIP    *string    `gorm:"type:varchar(45);column:last_ip"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
