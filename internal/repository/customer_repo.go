package repository

import (
	"strings"

	"gorm.io/gorm"

	"electricity-billing-backend/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID fetch a single customer by ID
func (r *CustomerRepository) GetByID(id string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) GetByAccountNumber(accountNumber string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, "account_number = ?", accountNumber).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// SearchByName performs a fuzzy search (simple LIKE) for now
func (r *CustomerRepository) SearchByName(name string) ([]models.Customer, error) {
	var customers []models.Customer
	likeName := "%" + strings.ToLower(name) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", likeName).Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) List() ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) SetActive(id string, isActive bool) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	customer.IsActive = isActive
	if err := r.db.Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Count(&count).Error
	return count, err
}

func (r *CustomerRepository) UpdatePassword(id string, hashed string) error {
	return r.db.Model(&models.Customer{}).Where("id = ?", id).Update("password", hashed).Error
}
