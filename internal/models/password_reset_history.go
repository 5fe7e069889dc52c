package models

import (
	"time"

	"github.com/google/uuid"
)

type PasswordResetHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Role      string
	CreatedAt time.Time
}
