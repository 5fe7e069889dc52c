package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Reading is one historical data point fed to the forecasting model.
type Reading struct {
	KillowatRead     float64 `json:"killowatRead"`
	MonthlyUsage     float64 `json:"monthlyUsage"`
	DateOfSubmission string  `json:"dateOfSubmission"`
}

// request is the payload written to the forecaster's stdin.
type request struct {
	CustomerID string    `json:"customerId"`
	Readings   []Reading `json:"readings"`
}

// UsageRange bounds the predicted usage.
type UsageRange struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Prediction is next month's forecast. PredictedKillowatRead is null when no
// historical meter value exists to extrapolate from.
type Prediction struct {
	NextMonthDate         string     `json:"next_month_date"`
	PredictedMonthlyUsage float64    `json:"predicted_monthlyUsage"`
	UsageRange            UsageRange `json:"usage_range"`
	PredictedKillowatRead *float64   `json:"predicted_killowatRead"`
}

// Forecast is the forecaster's stdout contract. MAELastMonth is null when
// the history is too short to backtest.
type Forecast struct {
	CustomerID      string     `json:"customerId"`
	HistoryUsed     int        `json:"history_used"`
	LastHistoryDate string     `json:"last_history_date"`
	MAELastMonth    *float64   `json:"mae_last_month"`
	Prediction      Prediction `json:"prediction"`
}

// Client runs the external usage forecaster as a subprocess.
type Client struct {
	command string
	script  string
	timeout time.Duration
}

func NewClient(command, script string, timeoutSeconds int) *Client {
	return &Client{
		command: command,
		script:  script,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

// Predict feeds the customer's reading history, oldest first, to the
// forecaster and returns its summary.
func (c *Client) Predict(ctx context.Context, customerID string, readings []Reading) (*Forecast, error) {
	payload, err := json.Marshal(request{
		CustomerID: customerID,
		Readings:   readings,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command, c.script)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("usage forecaster failed: %w (stderr: %s)", err, stderr.String())
	}

	return ParseForecast(stdout.Bytes())
}

// ParseForecast decodes the forecaster output and rejects summaries without
// a prediction.
func ParseForecast(output []byte) (*Forecast, error) {
	var result Forecast
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("malformed forecaster output: %w", err)
	}
	if result.Prediction.NextMonthDate == "" {
		return nil, fmt.Errorf("forecaster returned no prediction")
	}
	return &result, nil
}
