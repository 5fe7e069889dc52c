package forecasting

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/clients/forecast"
	"electricity-billing-backend/internal/models"
)

type fakeReadings struct {
	readings []models.MeterReading
}

func (f *fakeReadings) ListForCustomer(uuid.UUID) ([]models.MeterReading, error) {
	return f.readings, nil
}

type fakePredictions struct {
	upserts []*models.UsagePrediction
}

func (f *fakePredictions) Upsert(p *models.UsagePrediction) error {
	f.upserts = append(f.upserts, p)
	return nil
}

type fakeForecaster struct {
	history []forecast.Reading
	result  *forecast.Forecast
	err     error
}

func (f *fakeForecaster) Predict(_ context.Context, _ string, readings []forecast.Reading) (*forecast.Forecast, error) {
	f.history = readings
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func sampleResult() *forecast.Forecast {
	read := 181.5
	return &forecast.Forecast{
		CustomerID:      "customer-1",
		HistoryUsed:     2,
		LastHistoryDate: "2026-07-31",
		Prediction: forecast.Prediction{
			NextMonthDate:         "2026-08-31",
			PredictedMonthlyUsage: 31.5,
			UsageRange:            forecast.UsageRange{Lower: 27.1, Upper: 35.9},
			PredictedKillowatRead: &read,
		},
	}
}

func TestForecastUsage_StoresAndReturnsPrediction(t *testing.T) {
	customerID := uuid.New()
	readings := &fakeReadings{readings: []models.MeterReading{
		{KillowatRead: 150, MonthlyUsage: 30, DateOfSubmission: "2026-07-31"},
		{KillowatRead: 120, MonthlyUsage: 120, DateOfSubmission: "2026-06-30"},
	}}
	predictions := &fakePredictions{}
	forecaster := &fakeForecaster{result: sampleResult()}
	service := NewService(readings, predictions, forecaster, zap.NewNop())

	result, err := service.ForecastUsage(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, 31.5, result.Prediction.PredictedMonthlyUsage)

	// history must arrive oldest first
	require.Len(t, forecaster.history, 2)
	assert.Equal(t, "2026-06-30", forecaster.history[0].DateOfSubmission)
	assert.Equal(t, "2026-07-31", forecaster.history[1].DateOfSubmission)

	require.Len(t, predictions.upserts, 1)
	stored := predictions.upserts[0]
	assert.Equal(t, customerID, stored.CustomerID)
	assert.Equal(t, 31.5, stored.PredictedMonthlyUsage)
	assert.Equal(t, 27.1, stored.UsageLower)
	assert.Equal(t, 35.9, stored.UsageUpper)
	require.NotNil(t, stored.PredictedKillowatRead)
	assert.Equal(t, 181.5, *stored.PredictedKillowatRead)
}

func TestForecastUsage_NoHistory(t *testing.T) {
	service := NewService(&fakeReadings{}, &fakePredictions{}, &fakeForecaster{}, zap.NewNop())

	_, err := service.ForecastUsage(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestForecastUsage_ForecasterFailure(t *testing.T) {
	readings := &fakeReadings{readings: []models.MeterReading{
		{KillowatRead: 120, MonthlyUsage: 120, DateOfSubmission: "2026-06-30"},
	}}
	predictions := &fakePredictions{}
	forecaster := &fakeForecaster{err: fmt.Errorf("forecaster crashed")}
	service := NewService(readings, predictions, forecaster, zap.NewNop())

	_, err := service.ForecastUsage(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Upstream))
	assert.Empty(t, predictions.upserts, "no prediction stored after a failed forecast")
}
