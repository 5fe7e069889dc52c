package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
