package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type TariffRepository struct {
	db *gorm.DB
}

func NewTariffRepository(db *gorm.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

// GetByCustomerID returns the customer's tariff, or nil if none was assigned.
func (r *TariffRepository) GetByCustomerID(customerID uuid.UUID) (*models.Tariff, error) {
	var tariff models.Tariff
	err := r.db.Where("customer_id = ?", customerID).First(&tariff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tariff, nil
}

func (r *TariffRepository) Create(tariff *models.Tariff) error {
	return r.db.Create(tariff).Error
}

func (r *TariffRepository) Update(tariff *models.Tariff) error {
	return r.db.Save(tariff).Error
}
