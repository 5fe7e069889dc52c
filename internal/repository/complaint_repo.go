package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

func (r *ComplaintRepository) List() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := r.db.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

// Search filters by account number and/or status, both optional.
func (r *ComplaintRepository) Search(accountNumber, status string) ([]models.Complaint, error) {
	var complaints []models.Complaint

	dbQuery := r.db.Model(&models.Complaint{})
	if accountNumber != "" {
		dbQuery = dbQuery.Where("LOWER(customer_acc_number) LIKE ?", "%"+strings.ToLower(accountNumber)+"%")
	}
	if status != "" {
		dbQuery = dbQuery.Where("status = ?", status)
	}

	err := dbQuery.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *ComplaintRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Complaint{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ComplaintRepository) UpdateStatus(id uuid.UUID, status string, resolvedBy *uuid.UUID) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.First(&complaint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	complaint.Status = status
	if resolvedBy != nil {
		complaint.ResolvedBy = resolvedBy
	}
	if err := r.db.Save(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}
