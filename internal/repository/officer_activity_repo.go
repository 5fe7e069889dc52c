package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type OfficerActivityRepository struct {
	db *gorm.DB
}

func NewOfficerActivityRepository(db *gorm.DB) *OfficerActivityRepository {
	return &OfficerActivityRepository{db: db}
}

func (r *OfficerActivityRepository) Create(activity *models.OfficerActivity) error {
	return r.db.Create(activity).Error
}

func (r *OfficerActivityRepository) ListForOfficer(officerID uuid.UUID) ([]models.OfficerActivity, error) {
	var activities []models.OfficerActivity
	err := r.db.Where("officer_id = ?", officerID).Order("created_at DESC").Find(&activities).Error
	return activities, err
}

func (r *OfficerActivityRepository) SearchForOfficer(officerID uuid.UUID, term string) ([]models.OfficerActivity, error) {
	var activities []models.OfficerActivity
	likeTerm := "%" + strings.ToLower(term) + "%"
	err := r.db.Where("officer_id = ? AND LOWER(activity) LIKE ?", officerID, likeTerm).
		Order("created_at DESC").Find(&activities).Error
	return activities, err
}
