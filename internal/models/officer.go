package models

import (
	"time"

	"github.com/google/uuid"
)

type Officer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"index"`
	Email         string
	Username      string `gorm:"uniqueIndex"`
	Password      string
	IsActive      bool `gorm:"default:true"`
	DeactivatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
