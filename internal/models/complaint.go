package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ComplaintOpen       = "Open"
	ComplaintInProgress = "In Progress"
	ComplaintResolved   = "Resolved"
)

type Complaint struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName      string
	CustomerAccNumber string `gorm:"index"`
	Subject           string
	Description       string
	Status            string     `gorm:"index"`
	ResolvedBy        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
