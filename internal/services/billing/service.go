package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/repository"
)

// Service covers everything an officer does around billing periods:
// schedules, tariffs, manual readings and payment recording.
type Service struct {
	schedules *repository.ScheduleRepository
	tariffs   *repository.TariffRepository
	readings  *repository.ReadingRepository
	payments  *repository.PaymentRepository
	customers *repository.CustomerRepository
	logger    *zap.Logger
}

func NewService(
	schedules *repository.ScheduleRepository,
	tariffs *repository.TariffRepository,
	readings *repository.ReadingRepository,
	payments *repository.PaymentRepository,
	customers *repository.CustomerRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		schedules: schedules,
		tariffs:   tariffs,
		readings:  readings,
		payments:  payments,
		customers: customers,
		logger:    logger,
	}
}

// CreateSchedule registers a billing period. Opening it is a separate,
// explicit transition so the single-open invariant stays in one place.
func (s *Service) CreateSchedule(yearAndMonth, startDate, endDate string, open bool) (*models.PaymentSchedule, error) {
	schedule := &models.PaymentSchedule{
		ID:                     uuid.New(),
		YearAndMonth:           yearAndMonth,
		NormalPaymentStartDate: startDate,
		NormalPaymentEndDate:   endDate,
		IsOpen:                 false,
	}
	if err := s.schedules.Create(schedule); err != nil {
		return nil, err
	}
	if open {
		return s.OpenSchedule(schedule.ID)
	}
	return schedule, nil
}

// OpenSchedule opens one period, closing all others atomically.
func (s *Service) OpenSchedule(id uuid.UUID) (*models.PaymentSchedule, error) {
	schedule, err := s.schedules.Open(id)
	if err != nil {
		return nil, notFoundOr(err, "payment schedule not found")
	}
	s.logger.Info("payment schedule opened", zap.String("year_and_month", schedule.YearAndMonth))
	return schedule, nil
}

// CloseSchedule closes a period; submissions are rejected until another opens.
func (s *Service) CloseSchedule(id uuid.UUID) (*models.PaymentSchedule, error) {
	schedule, err := s.schedules.Close(id)
	if err != nil {
		return nil, notFoundOr(err, "payment schedule not found")
	}
	s.logger.Info("payment schedule closed", zap.String("year_and_month", schedule.YearAndMonth))
	return schedule, nil
}

func (s *Service) ListSchedules() ([]models.PaymentSchedule, error) {
	return s.schedules.List()
}

// AssignTariff creates or updates a customer's tariff.
func (s *Service) AssignTariff(customerID uuid.UUID, energyTariff, serviceCharge float64) (*models.Tariff, error) {
	existing, err := s.tariffs.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.EnergyTariff = energyTariff
		existing.ServiceCharge = serviceCharge
		if err := s.tariffs.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	tariff := &models.Tariff{
		ID:            uuid.New(),
		CustomerID:    customerID,
		EnergyTariff:  energyTariff,
		ServiceCharge: serviceCharge,
	}
	if err := s.tariffs.Create(tariff); err != nil {
		return nil, err
	}
	return tariff, nil
}

// RecordManualReading is the officer-side path: the kilowatt value is typed
// in rather than extracted from a photo, and the payment can be taken on the
// spot. One payment window must still be open.
func (s *Service) RecordManualReading(accountNumber string, killowatRead float64, markPaid bool, officerID uuid.UUID) (*models.MeterReading, error) {
	customer, err := s.customers.GetByAccountNumber(accountNumber)
	if err != nil {
		return nil, notFoundOr(err, "customer not found")
	}

	tariff, err := s.tariffs.GetByCustomerID(customer.ID)
	if err != nil {
		return nil, err
	}
	if tariff == nil {
		return nil, apperr.New(apperr.NotFound, "no tariff assigned to this customer")
	}

	schedule, err := s.schedules.GetOpen()
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperr.New(apperr.NotFound, "no payment window is currently open")
	}

	previous, err := s.readings.LatestForCustomer(customer.ID)
	if err != nil {
		return nil, err
	}
	previousKW := 0.0
	if previous != nil {
		previousKW = previous.KillowatRead
	}
	monthlyUsage := killowatRead - previousKW
	fee := tariff.EnergyTariff*monthlyUsage + tariff.ServiceCharge

	reading := &models.MeterReading{
		ID:               uuid.New(),
		CustomerID:       customer.ID,
		PaymentMonthID:   schedule.ID,
		KillowatRead:     killowatRead,
		MonthlyUsage:     monthlyUsage,
		AnomalyStatus:    "Normal",
		PaymentStatus:    models.PaymentPending,
		Fee:              fee,
		DateOfSubmission: time.Now().Format("2006-01-02"),
		CreatedAt:        time.Now(),
	}
	if err := s.readings.Create(reading); err != nil {
		return nil, err
	}

	if markPaid {
		return s.MarkReadingPaid(reading.ID, officerID)
	}
	return reading, nil
}

// MarkReadingPaid flips the reading to Paid and records the payment.
func (s *Service) MarkReadingPaid(readingID uuid.UUID, officerID uuid.UUID) (*models.MeterReading, error) {
	reading, err := s.readings.UpdatePaymentStatus(readingID, models.PaymentPaid)
	if err != nil {
		return nil, notFoundOr(err, "reading not found")
	}

	payment := &models.Payment{
		ID:             uuid.New(),
		MeterReadingID: &reading.ID,
		CustomerID:     reading.CustomerID,
		PaymentMonthID: reading.PaymentMonthID,
		Amount:         reading.Fee,
		RecordedBy:     &officerID,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}
	return reading, nil
}

// MissedMonths lists billing periods for which the customer never submitted
// a reading.
func (s *Service) MissedMonths(accountNumber string) ([]models.PaymentSchedule, error) {
	customer, err := s.customers.GetByAccountNumber(accountNumber)
	if err != nil {
		return nil, notFoundOr(err, "customer not found")
	}

	schedules, err := s.schedules.List()
	if err != nil {
		return nil, err
	}

	var missed []models.PaymentSchedule
	for _, schedule := range schedules {
		exists, err := s.readings.ExistsForCustomerAndMonth(customer.ID, schedule.ID)
		if err != nil {
			return nil, err
		}
		if !exists {
			missed = append(missed, schedule)
		}
	}
	return missed, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, message)
	}
	return err
}
