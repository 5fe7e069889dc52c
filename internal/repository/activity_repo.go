package repository

import (
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(activity *models.SystemActivity) error {
	return r.db.Create(activity).Error
}

func (r *ActivityRepository) ListNewestFirst() ([]models.SystemActivity, error) {
	var activities []models.SystemActivity
	err := r.db.Order("timestamp DESC").Find(&activities).Error
	return activities, err
}
