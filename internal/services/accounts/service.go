package accounts

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/repository"
)

// ErrBadCredentials is returned for any login failure so the response never
// reveals which part was wrong.
var ErrBadCredentials = errors.New("bad credentials")

// ErrAccountDeactivated is returned when a deactivated customer or officer
// tries to log in.
var ErrAccountDeactivated = errors.New("account deactivated")

// DefaultPassword is issued on account creation and password resets; the
// user is expected to change it.
const DefaultPassword = "12345678"

// LoginResult is the unified login response for all three roles.
type LoginResult struct {
	Role     string
	ID       uuid.UUID
	Name     string
	Username string
	Token    string
}

type Service struct {
	customers *repository.CustomerRepository
	officers  *repository.OfficerRepository
	admins    *repository.AdminRepository
	history   *repository.HistoryRepository
	issuer    *auth.TokenIssuer
	logger    *zap.Logger
}

func NewService(
	customers *repository.CustomerRepository,
	officers *repository.OfficerRepository,
	admins *repository.AdminRepository,
	history *repository.HistoryRepository,
	issuer *auth.TokenIssuer,
	logger *zap.Logger,
) *Service {
	return &Service{
		customers: customers,
		officers:  officers,
		admins:    admins,
		history:   history,
		issuer:    issuer,
		logger:    logger,
	}
}

// UnifiedLogin tries the identifier as a customer account number, then an
// officer username, then an admin username. Only a missing record falls
// through to the next role, an infrastructure failure surfaces immediately.
func (s *Service) UnifiedLogin(username, password string) (*LoginResult, error) {
	customer, err := s.customers.GetByAccountNumber(username)
	if lookupFailed(err) {
		return nil, err
	}
	if err == nil {
		if !auth.CheckPassword(password, customer.Password) {
			return nil, ErrBadCredentials
		}
		if !customer.IsActive {
			return nil, ErrAccountDeactivated
		}
		token, err := s.issuer.Generate(customer.ID, customer.AccountNumber, auth.RoleCustomer)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Role:     auth.RoleCustomer,
			ID:       customer.ID,
			Name:     customer.Name,
			Username: customer.AccountNumber,
			Token:    token,
		}, nil
	}

	officer, err := s.officers.GetByUsername(username)
	if lookupFailed(err) {
		return nil, err
	}
	if err == nil {
		if !auth.CheckPassword(password, officer.Password) {
			return nil, ErrBadCredentials
		}
		if !officer.IsActive {
			return nil, ErrAccountDeactivated
		}
		token, err := s.issuer.Generate(officer.ID, officer.Username, auth.RoleOfficer)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Role:     auth.RoleOfficer,
			ID:       officer.ID,
			Name:     officer.Name,
			Username: officer.Username,
			Token:    token,
		}, nil
	}

	admin, err := s.admins.GetByUsername(username)
	if lookupFailed(err) {
		return nil, err
	}
	if err == nil {
		if !auth.CheckPassword(password, admin.Password) {
			return nil, ErrBadCredentials
		}
		token, err := s.issuer.Generate(admin.ID, admin.Username, auth.RoleAdmin)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Role:     auth.RoleAdmin,
			ID:       admin.ID,
			Name:     admin.Name,
			Username: admin.Username,
			Token:    token,
		}, nil
	}

	return nil, ErrBadCredentials
}

// CreateCustomer registers a customer with a generated account number and the
// default password, returned once so the officer can hand them over.
func (s *Service) CreateCustomer(customer *models.Customer) (string, string, error) {
	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return "", "", err
	}

	customer.ID = uuid.New()
	customer.AccountNumber = generateAccountNumber()
	customer.Password = hashed
	customer.IsActive = true

	if err := s.customers.Create(customer); err != nil {
		return "", "", err
	}

	s.logger.Info("customer account created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("account_number", customer.AccountNumber),
	)
	return customer.AccountNumber, DefaultPassword, nil
}

// CreateOfficer registers an officer with the default password.
func (s *Service) CreateOfficer(officer *models.Officer) (string, error) {
	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return "", err
	}

	officer.ID = uuid.New()
	officer.Password = hashed
	officer.IsActive = true

	if err := s.officers.Create(officer); err != nil {
		return "", err
	}
	return DefaultPassword, nil
}

// CreateAdmin registers an additional admin account.
func (s *Service) CreateAdmin(admin *models.Admin, password string) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin.ID = uuid.New()
	admin.Password = hashed
	return s.admins.Create(admin)
}

// AdminSeedStore is the slice of the admin repository the startup seed needs.
type AdminSeedStore interface {
	Count() (int64, error)
	Create(admin *models.Admin) error
}

// SeedInitialAdmin creates the first admin account with the default password
// when the admins table is empty. Every later admin comes through the
// add-admin endpoint, which requires an authenticated admin.
func SeedInitialAdmin(admins AdminSeedStore, name, username string, logger *zap.Logger) error {
	count, err := admins.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		ID:       uuid.New(),
		Name:     name,
		Username: username,
		Password: hashed,
	}
	if err := admins.Create(admin); err != nil {
		return err
	}

	logger.Warn("seeded initial admin with the default password, change it",
		zap.String("username", username),
	)
	return nil
}

// ResetOfficerPassword puts an officer back on the default password.
func (s *Service) ResetOfficerPassword(id string) (string, error) {
	officer, err := s.officers.GetByID(id)
	if err != nil {
		return "", notFoundOr(err, "officer not found")
	}

	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return "", err
	}
	if err := s.officers.UpdatePassword(id, hashed); err != nil {
		return "", err
	}

	s.recordReset(officer.ID, auth.RoleOfficer)
	return DefaultPassword, nil
}

// ResetCustomerPassword puts a customer back on the default password.
func (s *Service) ResetCustomerPassword(id string) (string, error) {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return "", notFoundOr(err, "customer not found")
	}

	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return "", err
	}
	if err := s.customers.UpdatePassword(id, hashed); err != nil {
		return "", err
	}

	s.recordReset(customer.ID, auth.RoleCustomer)
	return DefaultPassword, nil
}

// ChangeCustomerPassword verifies the old password before replacing it.
func (s *Service) ChangeCustomerPassword(id, oldPassword, newPassword string) error {
	customer, err := s.customers.GetByID(id)
	if err != nil {
		return notFoundOr(err, "customer not found")
	}
	if !auth.CheckPassword(oldPassword, customer.Password) {
		return apperr.New(apperr.Input, "your old password is incorrect")
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.customers.UpdatePassword(id, hashed)
}

// ChangeOfficerPassword verifies the old password before replacing it.
func (s *Service) ChangeOfficerPassword(id, oldPassword, newPassword string) error {
	officer, err := s.officers.GetByID(id)
	if err != nil {
		return notFoundOr(err, "officer not found")
	}
	if !auth.CheckPassword(oldPassword, officer.Password) {
		return apperr.New(apperr.Input, "your old password is incorrect")
	}
	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.officers.UpdatePassword(id, hashed)
}

// UpdateAdmin changes the admin's name and/or username, requiring the old
// password when the password itself changes.
func (s *Service) UpdateAdmin(id, name, username, oldPassword, newPassword string) (*models.Admin, error) {
	admin, err := s.admins.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "admin not found")
	}

	if name != "" {
		admin.Name = name
	}
	if username != "" {
		admin.Username = username
	}
	if newPassword != "" {
		if !auth.CheckPassword(oldPassword, admin.Password) {
			return nil, apperr.New(apperr.Input, "your old password is incorrect")
		}
		hashed, err := auth.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		admin.Password = hashed
	}

	if err := s.admins.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) recordReset(userID uuid.UUID, role string) {
	reset := &models.PasswordResetHistory{
		ID:     uuid.New(),
		UserID: userID,
		Role:   role,
	}
	if err := s.history.RecordPasswordReset(reset); err != nil {
		s.logger.Warn("failed to record password reset", zap.Error(err))
	}
}

// lookupFailed reports repository errors other than a missing record.
func lookupFailed(err error) bool {
	return err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, message)
	}
	return err
}

func generateAccountNumber() string {
	return fmt.Sprintf("%010d", rand.Int63n(9_000_000_000)+1_000_000_000)
}
