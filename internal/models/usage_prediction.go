package models

import (
	"time"

	"github.com/google/uuid"
)

// UsagePrediction is the latest forecast for a customer, one row per
// customer, overwritten on every run.
type UsagePrediction struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	NextMonthDate         string
	PredictedMonthlyUsage float64
	UsageLower            float64
	UsageUpper            float64
	PredictedKillowatRead *float64
	MAELastMonth          *float64
	HistoryUsed           int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
