package ingestion

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/clients/vision"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/storage"
)

type fakeCustomers struct {
	customer *models.Customer
}

func (f *fakeCustomers) GetByID(id string) (*models.Customer, error) {
	return f.customer, nil
}

type fakeReadings struct {
	mu       sync.Mutex
	readings []*models.MeterReading
}

func (f *fakeReadings) Create(reading *models.MeterReading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readings = append(f.readings, reading)
	return nil
}

func (f *fakeReadings) LatestForCustomer(customerID uuid.UUID) (*models.MeterReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.readings) == 0 {
		return nil, nil
	}
	return f.readings[len(f.readings)-1], nil
}

type fakeTariffs struct {
	tariff *models.Tariff
}

func (f *fakeTariffs) GetByCustomerID(customerID uuid.UUID) (*models.Tariff, error) {
	return f.tariff, nil
}

type fakeSchedules struct {
	schedule *models.PaymentSchedule
}

func (f *fakeSchedules) GetOpen() (*models.PaymentSchedule, error) {
	return f.schedule, nil
}

type fakeExtractor struct {
	mu      sync.Mutex
	results []*vision.Extraction
	err     error
}

func (f *fakeExtractor) Extract(ctx context.Context, imageBase64, mimeType string) (*vision.Extraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return result, nil
}

type fakeClassifier struct {
	mu     sync.Mutex
	status string
	err    error
	usages []float64
}

func (f *fakeClassifier) Classify(ctx context.Context, customerID string, killowatRead, monthlyUsage float64) (string, error) {
	f.mu.Lock()
	f.usages = append(f.usages, monthlyUsage)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.status, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads int
	deletes []string
	err     error
}

func (f *fakeUploader) Upload(ctx context.Context, customerID string, photo []byte, mimeType string) (*storage.StoredPhoto, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	id := fmt.Sprintf("meter-photos/%s/%d", customerID, f.uploads)
	return &storage.StoredPhoto{
		SecureURL: "https://photos.example.com/" + id,
		PublicID:  id,
	}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	return nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

type pipelineFixture struct {
	service   *Service
	customers *fakeCustomers
	readings  *fakeReadings
	tariffs   *fakeTariffs
	schedules *fakeSchedules
	extractor *fakeExtractor
	classify  *fakeClassifier
	uploader  *fakeUploader
}

func newFixture() *pipelineFixture {
	customer := &models.Customer{
		ID:            uuid.New(),
		Name:          "Abebe Kebede",
		AccountNumber: "1234567890",
		MeterReaderSN: "X123",
		IsActive:      true,
	}

	f := &pipelineFixture{
		customers: &fakeCustomers{customer: customer},
		readings:  &fakeReadings{},
		tariffs: &fakeTariffs{tariff: &models.Tariff{
			ID:            uuid.New(),
			CustomerID:    customer.ID,
			EnergyTariff:  2,
			ServiceCharge: 50,
		}},
		schedules: &fakeSchedules{schedule: &models.PaymentSchedule{
			ID:           uuid.New(),
			YearAndMonth: "2025-01",
			IsOpen:       true,
		}},
		extractor: &fakeExtractor{results: []*vision.Extraction{
			{MeterNo: strPtr("X123"), Kilowatt: f64Ptr(120)},
		}},
		classify: &fakeClassifier{status: "Normal"},
		uploader: &fakeUploader{},
	}

	f.service = NewService(
		f.customers, f.readings, f.tariffs, f.schedules,
		f.extractor, f.classify, f.uploader,
		zap.NewNop(),
	)
	return f
}

func (f *pipelineFixture) customerID() string {
	return f.customers.customer.ID.String()
}

func TestSubmitReading_FirstReading(t *testing.T) {
	f := newFixture()

	reading, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 120.0, reading.KillowatRead)
	assert.Equal(t, 120.0, reading.MonthlyUsage, "first reading uses previous value 0")
	assert.Equal(t, 290.0, reading.Fee, "fee = 2*120 + 50")
	assert.Equal(t, models.PaymentPending, reading.PaymentStatus)
	assert.Equal(t, "Normal", reading.AnomalyStatus)
	assert.Equal(t, f.schedules.schedule.ID, reading.PaymentMonthID)
	assert.NotEmpty(t, reading.PhotoURL)
	assert.Len(t, f.readings.readings, 1)
	assert.Empty(t, f.uploader.deletes, "accepted submission keeps its photo")
}

func TestSubmitReading_SubsequentReadingUsesDelta(t *testing.T) {
	f := newFixture()
	f.extractor.results = []*vision.Extraction{
		{MeterNo: strPtr("X123"), Kilowatt: f64Ptr(120)},
		{MeterNo: strPtr("X123"), Kilowatt: f64Ptr(150)},
	}

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.NoError(t, err)

	reading, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 30.0, reading.MonthlyUsage)
	assert.Equal(t, 110.0, reading.Fee, "fee = 2*30 + 50")
}

func TestSubmitReading_MeterMismatchHasNoSideEffects(t *testing.T) {
	f := newFixture()
	f.extractor.results = []*vision.Extraction{
		{MeterNo: strPtr("Y999"), Kilowatt: f64Ptr(120)},
	}

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)

	assert.True(t, apperr.IsKind(err, apperr.Ownership))
	assert.Zero(t, f.uploader.uploads, "ownership gate must run before the upload")
	assert.Empty(t, f.readings.readings)
}

func TestSubmitReading_MissingMeterNoIsOwnershipFailure(t *testing.T) {
	f := newFixture()
	f.extractor.results = []*vision.Extraction{
		{MeterNo: nil, Kilowatt: f64Ptr(120)},
	}

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Ownership))
}

func TestSubmitReading_NoPhoto(t *testing.T) {
	f := newFixture()

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), nil, "image/jpeg")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Input))
}

func TestSubmitReading_UnreadableExtractionIsInputError(t *testing.T) {
	f := newFixture()
	_, parseErr := vision.ParseExtraction("the meter shows roughly 120 kWh")
	require.Error(t, parseErr)
	f.extractor.err = parseErr

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Input))
	assert.Empty(t, f.readings.readings)
}

func TestSubmitReading_ExtractorOutageIsUpstreamError(t *testing.T) {
	f := newFixture()
	f.extractor.err = fmt.Errorf("vision extraction failed: 503 service unavailable")

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Upstream))
}

func TestSubmitReading_NilKilowatt(t *testing.T) {
	f := newFixture()
	f.extractor.results = []*vision.Extraction{
		{MeterNo: strPtr("X123"), Kilowatt: nil},
	}

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Input))
}

func TestSubmitReading_NoOpenScheduleCleansUpPhoto(t *testing.T) {
	f := newFixture()
	f.schedules.schedule = nil

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)

	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Empty(t, f.readings.readings)
	require.Equal(t, 1, f.uploader.uploads)
	assert.Len(t, f.uploader.deletes, 1, "aborted submission must not retain the uploaded photo")
}

func TestSubmitReading_NoTariffRejectsEntirely(t *testing.T) {
	f := newFixture()
	f.tariffs.tariff = nil

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)

	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Empty(t, f.readings.readings, "a customer without a tariff is not saved as unbilled")
	assert.Len(t, f.uploader.deletes, 1)
}

func TestSubmitReading_AnomalyFailureAborts(t *testing.T) {
	f := newFixture()
	f.classify.err = fmt.Errorf("anomaly classifier failed: exit status 1")

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.Error(t, err)

	assert.True(t, apperr.IsKind(err, apperr.Upstream))
	assert.Empty(t, f.readings.readings)
	assert.Len(t, f.uploader.deletes, 1)
}

func TestSubmitReading_NegativeDeltaFlowsToAnomalyCheck(t *testing.T) {
	f := newFixture()
	f.extractor.results = []*vision.Extraction{
		{MeterNo: strPtr("X123"), Kilowatt: f64Ptr(100)},
		{MeterNo: strPtr("X123"), Kilowatt: f64Ptr(40)},
	}
	f.classify.status = "Anomaly/Fraud"

	_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.NoError(t, err)

	reading, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, -60.0, reading.MonthlyUsage, "negative deltas are not floored")
	assert.Equal(t, "Anomaly/Fraud", reading.AnomalyStatus, "classifier status is stored verbatim")
	assert.Equal(t, []float64{100, -60}, f.classify.usages)
}

func TestSubmitReading_ConcurrentSubmissionsAreSerialized(t *testing.T) {
	f := newFixture()

	const n = 8
	results := make([]*vision.Extraction, n)
	for i := range results {
		results[i] = &vision.Extraction{MeterNo: strPtr("X123"), Kilowatt: f64Ptr(float64((i + 1) * 100))}
	}
	f.extractor.results = results

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.SubmitReading(context.Background(), f.customerID(), []byte("photo"), "image/jpeg")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, f.readings.readings, n)

	// Each delta was computed against the previously persisted reading, so
	// the usages must chain: their sum equals the last stored kilowatt value.
	sum := 0.0
	for _, reading := range f.readings.readings {
		sum += reading.MonthlyUsage
	}
	last := f.readings.readings[n-1]
	assert.Equal(t, last.KillowatRead, sum)
}
