package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivitySuccess = "success"
	ActivityWarning = "warning"
	ActivityPending = "pending"
	ActivityInfo    = "info"
)

type SystemActivity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Event     string
	User      string
	Status    string
	IPAddress string
	Timestamp time.Time `gorm:"index"`
}
