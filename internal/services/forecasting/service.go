package forecasting

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/clients/forecast"
	"electricity-billing-backend/internal/models"
)

// Forecaster predicts next month's usage from a reading history.
type Forecaster interface {
	Predict(ctx context.Context, customerID string, readings []forecast.Reading) (*forecast.Forecast, error)
}

type ReadingStore interface {
	ListForCustomer(customerID uuid.UUID) ([]models.MeterReading, error)
}

type PredictionStore interface {
	Upsert(prediction *models.UsagePrediction) error
}

// Service runs the usage forecaster over a customer's history and keeps the
// latest prediction per customer.
type Service struct {
	readings    ReadingStore
	predictions PredictionStore
	forecaster  Forecaster
	logger      *zap.Logger
}

func NewService(readings ReadingStore, predictions PredictionStore, forecaster Forecaster, logger *zap.Logger) *Service {
	return &Service{
		readings:    readings,
		predictions: predictions,
		forecaster:  forecaster,
		logger:      logger,
	}
}

// ForecastUsage feeds the customer's full reading history, oldest first, to
// the forecaster, stores the result and returns it.
func (s *Service) ForecastUsage(ctx context.Context, customerID uuid.UUID) (*forecast.Forecast, error) {
	readings, err := s.readings.ListForCustomer(customerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "could not load reading history", err)
	}
	if len(readings) == 0 {
		return nil, apperr.New(apperr.NotFound, "no reading history to forecast from")
	}

	// ListForCustomer returns newest first, the forecaster wants oldest first.
	history := make([]forecast.Reading, 0, len(readings))
	for i := len(readings) - 1; i >= 0; i-- {
		history = append(history, forecast.Reading{
			KillowatRead:     readings[i].KillowatRead,
			MonthlyUsage:     readings[i].MonthlyUsage,
			DateOfSubmission: readings[i].DateOfSubmission,
		})
	}

	summary, err := s.forecaster.Predict(ctx, customerID.String(), history)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "usage forecast failed", err)
	}

	prediction := &models.UsagePrediction{
		ID:                    uuid.New(),
		CustomerID:            customerID,
		NextMonthDate:         summary.Prediction.NextMonthDate,
		PredictedMonthlyUsage: summary.Prediction.PredictedMonthlyUsage,
		UsageLower:            summary.Prediction.UsageRange.Lower,
		UsageUpper:            summary.Prediction.UsageRange.Upper,
		PredictedKillowatRead: summary.Prediction.PredictedKillowatRead,
		MAELastMonth:          summary.MAELastMonth,
		HistoryUsed:           summary.HistoryUsed,
	}
	if err := s.predictions.Upsert(prediction); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "could not store forecast", err)
	}

	s.logger.Info("usage forecast generated",
		zap.String("customer_id", customerID.String()),
		zap.String("next_month", summary.Prediction.NextMonthDate),
		zap.Float64("predicted_usage", summary.Prediction.PredictedMonthlyUsage),
	)
	return summary, nil
}
