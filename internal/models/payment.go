package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MeterReadingID *uuid.UUID `gorm:"type:uuid;index"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;index"`
	PaymentMonthID uuid.UUID  `gorm:"type:uuid;index"`
	Amount         float64
	RecordedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
}
