package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentSchedule is a named billing period. The partial unique index keeps
// at most one schedule open at a time.
type PaymentSchedule struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	YearAndMonth           string    `gorm:"uniqueIndex"`
	NormalPaymentStartDate string
	NormalPaymentEndDate   string
	IsOpen                 bool `gorm:"uniqueIndex:udx_open_schedule,where:is_open = true"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
