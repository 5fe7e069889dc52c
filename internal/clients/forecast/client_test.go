package forecast

import (
	"context"
	"runtime"
	"testing"
)

const sampleForecast = `{
	"customerId": "customer-1",
	"history_used": 6,
	"last_history_date": "2026-07-31",
	"mae_last_month": 4.2,
	"prediction": {
		"next_month_date": "2026-08-31",
		"predicted_monthlyUsage": 31.5,
		"usage_range": {"lower": 27.1, "upper": 35.9},
		"predicted_killowatRead": 181.5
	}
}`

func TestParseForecast_Valid(t *testing.T) {
	result, err := ParseForecast([]byte(sampleForecast))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Prediction.PredictedMonthlyUsage != 31.5 {
		t.Errorf("expected predicted usage 31.5, got %v", result.Prediction.PredictedMonthlyUsage)
	}
	if result.Prediction.PredictedKillowatRead == nil || *result.Prediction.PredictedKillowatRead != 181.5 {
		t.Errorf("expected predicted read 181.5, got %v", result.Prediction.PredictedKillowatRead)
	}
	if result.HistoryUsed != 6 {
		t.Errorf("expected 6 history points, got %d", result.HistoryUsed)
	}
}

func TestParseForecast_NullOptionalFields(t *testing.T) {
	result, err := ParseForecast([]byte(`{
		"customerId": "customer-1",
		"history_used": 2,
		"last_history_date": "2026-07-31",
		"mae_last_month": null,
		"prediction": {
			"next_month_date": "2026-08-31",
			"predicted_monthlyUsage": 20,
			"usage_range": {"lower": 15, "upper": 25},
			"predicted_killowatRead": null
		}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MAELastMonth != nil {
		t.Errorf("expected nil MAE, got %v", *result.MAELastMonth)
	}
	if result.Prediction.PredictedKillowatRead != nil {
		t.Errorf("expected nil predicted read, got %v", *result.Prediction.PredictedKillowatRead)
	}
}

func TestParseForecast_Malformed(t *testing.T) {
	_, err := ParseForecast([]byte("Traceback (most recent call last):"))
	if err == nil {
		t.Fatal("expected error for malformed output")
	}
}

func TestParseForecast_MissingPrediction(t *testing.T) {
	_, err := ParseForecast([]byte(`{"customerId": "customer-1", "history_used": 0}`))
	if err == nil {
		t.Fatal("expected error for a summary without a prediction")
	}
}

func TestPredict_RunsSubprocess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a unix echo binary")
	}

	// echo prints its argument, standing in for the real forecaster script.
	client := NewClient("echo", sampleForecast, 5)

	result, err := client.Predict(context.Background(), "customer-1", []Reading{
		{KillowatRead: 150, MonthlyUsage: 30, DateOfSubmission: "2026-07-31"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Prediction.NextMonthDate != "2026-08-31" {
		t.Errorf("expected next month 2026-08-31, got %s", result.Prediction.NextMonthDate)
	}
}

func TestPredict_MissingBinary(t *testing.T) {
	client := NewClient("definitely-not-a-real-binary", "script.py", 5)

	_, err := client.Predict(context.Background(), "customer-1", nil)
	if err == nil {
		t.Fatal("expected error for missing forecaster binary")
	}
}
