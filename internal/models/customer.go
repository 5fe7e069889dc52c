package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"index"`
	Region        string
	ServiceCenter string
	AddressRegion string
	Zone          string
	Woreda        string
	Town          string
	Purpose       string
	PowerApproved float64
	Volt          float64
	DepositBirr   float64
	AccountNumber string `gorm:"uniqueIndex"`
	MeterReaderSN string `gorm:"index"`
	Password      string
	IsActive      bool `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
