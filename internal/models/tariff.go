package models

import (
	"time"

	"github.com/google/uuid"
)

// Tariff prices one customer's usage: currency per kWh plus a flat charge.
type Tariff struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	EnergyTariff  float64
	ServiceCharge float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
