package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type ReadingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) Create(reading *models.MeterReading) error {
	return r.db.Create(reading).Error
}

// LatestForCustomer returns the most recent reading, or nil if none exists.
func (r *ReadingRepository) LatestForCustomer(customerID uuid.UUID) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *ReadingRepository) ListForCustomer(customerID uuid.UUID) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&readings).Error
	return readings, err
}

func (r *ReadingRepository) GetByID(id uuid.UUID) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := r.db.First(&reading, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// UpdatePaymentStatus is the only post-creation mutation on a reading.
func (r *ReadingRepository) UpdatePaymentStatus(id uuid.UUID, status string) (*models.MeterReading, error) {
	var reading models.MeterReading
	if err := r.db.First(&reading, "id = ?", id).Error; err != nil {
		return nil, err
	}
	reading.PaymentStatus = status
	if err := r.db.Save(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

// ExistsForCustomerAndMonth reports whether the customer already has a reading
// in the given billing period.
func (r *ReadingRepository) ExistsForCustomerAndMonth(customerID, scheduleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.MeterReading{}).
		Where("customer_id = ? AND payment_month_id = ?", customerID, scheduleID).
		Count(&count).Error
	return count > 0, err
}
