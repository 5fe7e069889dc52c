package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"
)

// MeterReading is one priced, anomaly-flagged submission.
type MeterReading struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index"`
	PaymentMonthID    uuid.UUID `gorm:"type:uuid;index"`
	PhotoURL          string
	PhotoID           string
	KillowatRead      float64
	MonthlyUsage      float64
	AnomalyStatus     string
	PaymentStatus     string `gorm:"index;default:Pending"`
	Fee               float64
	DateOfSubmission  string
	ExtractionDetails datatypes.JSON
	CreatedAt         time.Time
}
