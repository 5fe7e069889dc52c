package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(schedule *models.PaymentSchedule) error {
	return r.db.Create(schedule).Error
}

// GetOpen returns the open schedule, or nil if no billing window is open.
func (r *ScheduleRepository) GetOpen() (*models.PaymentSchedule, error) {
	var schedule models.PaymentSchedule
	err := r.db.Where("is_open = ?", true).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) GetByID(id uuid.UUID) (*models.PaymentSchedule, error) {
	var schedule models.PaymentSchedule
	err := r.db.First(&schedule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) List() ([]models.PaymentSchedule, error) {
	var schedules []models.PaymentSchedule
	err := r.db.Order("created_at DESC").Find(&schedules).Error
	return schedules, err
}

// Open marks one schedule open and closes every other one in the same
// transaction, so the single-open invariant holds without relying on callers.
func (r *ScheduleRepository) Open(id uuid.UUID) (*models.PaymentSchedule, error) {
	var schedule models.PaymentSchedule
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PaymentSchedule{}).
			Where("is_open = ?", true).
			Update("is_open", false).Error; err != nil {
			return err
		}
		if err := tx.First(&schedule, "id = ?", id).Error; err != nil {
			return err
		}
		schedule.IsOpen = true
		return tx.Save(&schedule).Error
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) Close(id uuid.UUID) (*models.PaymentSchedule, error) {
	var schedule models.PaymentSchedule
	if err := r.db.First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	schedule.IsOpen = false
	if err := r.db.Save(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}
