package repository

import (
	"errors"

	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Upsert keeps one prediction row per customer.
func (r *PredictionRepository) Upsert(prediction *models.UsagePrediction) error {
	var existing models.UsagePrediction
	err := r.db.First(&existing, "customer_id = ?", prediction.CustomerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(prediction).Error
	}
	if err != nil {
		return err
	}
	prediction.ID = existing.ID
	prediction.CreatedAt = existing.CreatedAt
	return r.db.Save(prediction).Error
}
