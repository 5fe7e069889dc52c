package complaints

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/repository"
)

type Service struct {
	complaints *repository.ComplaintRepository
	customers  *repository.CustomerRepository
}

func NewService(complaints *repository.ComplaintRepository, customers *repository.CustomerRepository) *Service {
	return &Service{complaints: complaints, customers: customers}
}

// File opens a complaint on behalf of the authenticated customer.
func (s *Service) File(customerID, subject, description string) (*models.Complaint, error) {
	customer, err := s.customers.GetByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "customer not found")
		}
		return nil, err
	}

	complaint := &models.Complaint{
		ID:                uuid.New(),
		CustomerName:      customer.Name,
		CustomerAccNumber: customer.AccountNumber,
		Subject:           subject,
		Description:       description,
		Status:            models.ComplaintOpen,
	}
	if err := s.complaints.Create(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *Service) List() ([]models.Complaint, error) {
	return s.complaints.List()
}

func (s *Service) Search(accountNumber, status string) ([]models.Complaint, error) {
	return s.complaints.Search(accountNumber, status)
}

// UpdateStatus moves a complaint along, recording who resolved it.
func (s *Service) UpdateStatus(id uuid.UUID, status string, officerID uuid.UUID) (*models.Complaint, error) {
	var resolvedBy *uuid.UUID
	if status == models.ComplaintResolved {
		resolvedBy = &officerID
	}
	complaint, err := s.complaints.UpdateStatus(id, status, resolvedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "complaint not found")
		}
		return nil, err
	}
	return complaint, nil
}
