package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/clients/vision"
	"electricity-billing-backend/internal/metrics"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/storage"
)

// Extractor reads a meter number and kWh value off a photo.
type Extractor interface {
	Extract(ctx context.Context, imageBase64, mimeType string) (*vision.Extraction, error)
}

// Classifier flags a reading as Normal / Anomaly / NeedsInvestigation.
type Classifier interface {
	Classify(ctx context.Context, customerID string, killowatRead, monthlyUsage float64) (string, error)
}

// Uploader persists photos remotely and can remove them again when a later
// gate aborts the submission.
type Uploader interface {
	Upload(ctx context.Context, customerID string, photo []byte, mimeType string) (*storage.StoredPhoto, error)
	Delete(ctx context.Context, publicID string) error
}

type CustomerStore interface {
	GetByID(id string) (*models.Customer, error)
}

type ReadingStore interface {
	Create(reading *models.MeterReading) error
	LatestForCustomer(customerID uuid.UUID) (*models.MeterReading, error)
}

type TariffStore interface {
	GetByCustomerID(customerID uuid.UUID) (*models.Tariff, error)
}

type ScheduleStore interface {
	GetOpen() (*models.PaymentSchedule, error)
}

// Service converts one submitted meter photo into a priced, anomaly-flagged,
// persisted reading, or fails clearly. Every step is a hard gate.
type Service struct {
	customers  CustomerStore
	readings   ReadingStore
	tariffs    TariffStore
	schedules  ScheduleStore
	extractor  Extractor
	classifier Classifier
	uploader   Uploader
	logger     *zap.Logger

	// customerLocks serializes submissions per customer so two concurrent
	// requests cannot both bill against the same previous reading.
	customerLocks sync.Map // customerID -> *sync.Mutex
}

func NewService(
	customers CustomerStore,
	readings ReadingStore,
	tariffs TariffStore,
	schedules ScheduleStore,
	extractor Extractor,
	classifier Classifier,
	uploader Uploader,
	logger *zap.Logger,
) *Service {
	return &Service{
		customers:  customers,
		readings:   readings,
		tariffs:    tariffs,
		schedules:  schedules,
		extractor:  extractor,
		classifier: classifier,
		uploader:   uploader,
		logger:     logger,
	}
}

// SubmitReading runs the ingestion pipeline for one authenticated customer.
func (s *Service) SubmitReading(ctx context.Context, customerID string, photo []byte, mimeType string) (*models.MeterReading, error) {
	reading, err := s.submit(ctx, customerID, photo, mimeType)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return nil, err
	}
	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	metrics.SubmissionFee.Observe(reading.Fee)
	return reading, nil
}

func (s *Service) submit(ctx context.Context, customerID string, photo []byte, mimeType string) (*models.MeterReading, error) {
	if len(photo) == 0 {
		return nil, apperr.New(apperr.Input, "no meter photo attached")
	}

	encoded := base64.StdEncoding.EncodeToString(photo)
	extracted, err := s.extractor.Extract(ctx, encoded, mimeType)
	if err != nil {
		if errors.Is(err, vision.ErrUnreadable) {
			return nil, apperr.Wrap(apperr.Input, "could not read the meter photo, please retake it", err)
		}
		return nil, apperr.Wrap(apperr.Upstream, "meter photo analysis is unavailable", err)
	}

	if extracted.Kilowatt == nil || math.IsNaN(*extracted.Kilowatt) || math.IsInf(*extracted.Kilowatt, 0) {
		return nil, apperr.New(apperr.Input, "no valid kilowatt value could be read from the photo")
	}
	killowatRead := *extracted.Kilowatt

	customer, err := s.customers.GetByID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "customer not found")
		}
		return nil, apperr.Wrap(apperr.Upstream, "failed to load customer", err)
	}

	// Ownership gate: must pass before anything is uploaded.
	if extracted.MeterNo == nil || *extracted.MeterNo != customer.MeterReaderSN {
		return nil, apperr.New(apperr.Ownership, "the photographed meter does not belong to this account")
	}

	lock := s.lockFor(customerID)
	lock.Lock()
	defer lock.Unlock()

	previous, err := s.readings.LatestForCustomer(customer.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to load previous reading", err)
	}
	previousKW := 0.0
	if previous != nil {
		previousKW = previous.KillowatRead
	}
	// Negative deltas flow through to the anomaly check rather than being
	// rejected here (meter replacement is a legitimate cause).
	monthlyUsage := killowatRead - previousKW

	stored, err := s.uploader.Upload(ctx, customerID, photo, mimeType)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "photo upload failed", err)
	}
	saved := false
	defer func() {
		if !saved {
			if cleanupErr := s.uploader.Delete(context.WithoutCancel(ctx), stored.PublicID); cleanupErr != nil {
				s.logger.Warn("failed to clean up orphaned photo",
					zap.String("public_id", stored.PublicID),
					zap.Error(cleanupErr),
				)
			}
		}
	}()

	anomalyStatus, err := s.classifier.Classify(ctx, customerID, killowatRead, monthlyUsage)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "anomaly check failed", err)
	}

	tariff, err := s.tariffs.GetByCustomerID(customer.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to load tariff", err)
	}
	if tariff == nil {
		return nil, apperr.New(apperr.NotFound, "no tariff assigned to this customer")
	}

	fee := tariff.EnergyTariff*monthlyUsage + tariff.ServiceCharge

	schedule, err := s.schedules.GetOpen()
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to load payment schedule", err)
	}
	if schedule == nil {
		return nil, apperr.New(apperr.NotFound, "no payment window is currently open")
	}

	details, _ := json.Marshal(map[string]interface{}{
		"meter_no":       *extracted.MeterNo,
		"killowat_read":  killowatRead,
		"previous_read":  previousKW,
		"monthly_usage":  monthlyUsage,
		"anomaly_status": anomalyStatus,
	})

	reading := &models.MeterReading{
		ID:                uuid.New(),
		CustomerID:        customer.ID,
		PaymentMonthID:    schedule.ID,
		PhotoURL:          stored.SecureURL,
		PhotoID:           stored.PublicID,
		KillowatRead:      killowatRead,
		MonthlyUsage:      monthlyUsage,
		AnomalyStatus:     anomalyStatus,
		PaymentStatus:     models.PaymentPending,
		Fee:               fee,
		DateOfSubmission:  time.Now().Format("2006-01-02"),
		ExtractionDetails: details,
		CreatedAt:         time.Now(),
	}

	if err := s.readings.Create(reading); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to save the reading", err)
	}
	saved = true

	s.logger.Info("meter reading accepted",
		zap.String("customer_id", customerID),
		zap.Float64("killowat_read", killowatRead),
		zap.Float64("monthly_usage", monthlyUsage),
		zap.Float64("fee", fee),
		zap.String("anomaly_status", anomalyStatus),
	)

	return reading, nil
}

func (s *Service) lockFor(customerID string) *sync.Mutex {
	lock, _ := s.customerLocks.LoadOrStore(customerID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func outcomeFor(err error) string {
	switch {
	case apperr.IsKind(err, apperr.Input):
		return metrics.OutcomeInput
	case apperr.IsKind(err, apperr.Ownership):
		return metrics.OutcomeOwnership
	case apperr.IsKind(err, apperr.NotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeUpstream
	}
}
