package models

import (
	"time"

	"github.com/google/uuid"
)

// OfficerActivity is one entry in an officer's personal activity feed,
// distinct from the admin-facing system activity log.
type OfficerActivity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OfficerID uuid.UUID `gorm:"type:uuid;index"`
	Activity  string
	CreatedAt time.Time
}
