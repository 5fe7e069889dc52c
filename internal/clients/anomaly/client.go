package anomaly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// request is the payload written to the classifier's stdin.
type request struct {
	CustomerID   string  `json:"customerId"`
	KillowatRead float64 `json:"killowatRead"`
	MonthlyUsage float64 `json:"monthlyUsage"`
}

// response is the classifier's stdout contract.
type response struct {
	AnomalyStatus string `json:"anomalyStatus"`
}

// Client runs the external anomaly classifier as a subprocess.
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

// Classify feeds the reading to the classifier and returns its status
// verbatim. A non-zero exit or malformed output fails the call.
func (c *Client) Classify(ctx context.Context, customerID string, killowatRead, monthlyUsage float64) (string, error) {
	payload, err := json.Marshal(request{
		CustomerID:   customerID,
		KillowatRead: killowatRead,
		MonthlyUsage: monthlyUsage,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command, c.script)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("anomaly classifier failed: %w (stderr: %s)", err, stderr.String())
	}

	return ParseResult(stdout.Bytes())
}

// ParseResult decodes the classifier output and rejects empty statuses.
func ParseResult(output []byte) (string, error) {
	var result response
	if err := json.Unmarshal(output, &result); err != nil {
		return "", fmt.Errorf("malformed anomaly classifier output: %w", err)
	}
	if result.AnomalyStatus == "" {
		return "", fmt.Errorf("anomaly classifier returned no status")
	}
	return result.AnomalyStatus, nil
}
