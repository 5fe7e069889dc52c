package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) ListForCustomer(customerID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}
