package logging

import (
	"go.uber.org/zap"
)

// NewLogger creates a new structured logger
func NewLogger(serviceName string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// WithCustomerID returns a logger with customer_id field
func WithCustomerID(logger *zap.Logger, customerID string) *zap.Logger {
	return logger.With(zap.String("customer_id", customerID))
}
