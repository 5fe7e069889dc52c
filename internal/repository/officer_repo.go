package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type OfficerRepository struct {
	db *gorm.DB
}

func NewOfficerRepository(db *gorm.DB) *OfficerRepository {
	return &OfficerRepository{db: db}
}

func (r *OfficerRepository) Create(officer *models.Officer) error {
	return r.db.Create(officer).Error
}

func (r *OfficerRepository) GetByID(id string) (*models.Officer, error) {
	var officer models.Officer
	err := r.db.First(&officer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

func (r *OfficerRepository) GetByUsername(username string) (*models.Officer, error) {
	var officer models.Officer
	err := r.db.First(&officer, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &officer, nil
}

func (r *OfficerRepository) SearchByName(name string) ([]models.Officer, error) {
	var officers []models.Officer
	likeName := "%" + strings.ToLower(name) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", likeName).Find(&officers).Error
	return officers, err
}

func (r *OfficerRepository) List() ([]models.Officer, error) {
	var officers []models.Officer
	err := r.db.Order("created_at DESC").Find(&officers).Error
	return officers, err
}

func (r *OfficerRepository) SetActive(id string, isActive bool) (*models.Officer, error) {
	var officer models.Officer
	if err := r.db.First(&officer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	officer.IsActive = isActive
	if isActive {
		officer.DeactivatedAt = nil
	} else {
		now := time.Now()
		officer.DeactivatedAt = &now
	}
	if err := r.db.Save(&officer).Error; err != nil {
		return nil, err
	}
	return &officer, nil
}

func (r *OfficerRepository) Update(officer *models.Officer) error {
	return r.db.Save(officer).Error
}

func (r *OfficerRepository) UpdatePassword(id string, hashed string) error {
	return r.db.Model(&models.Officer{}).Where("id = ?", id).Update("password", hashed).Error
}
