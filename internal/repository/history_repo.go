package repository

import (
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) RecordPasswordReset(reset *models.PasswordResetHistory) error {
	return r.db.Create(reset).Error
}

func (r *HistoryRepository) ListPasswordResets() ([]models.PasswordResetHistory, error) {
	var resets []models.PasswordResetHistory
	err := r.db.Order("created_at DESC").Find(&resets).Error
	return resets, err
}
