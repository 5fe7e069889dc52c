package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/repository"
	"electricity-billing-backend/internal/services/ingestion"
)

type ReadingHandler struct {
	service  *ingestion.Service
	readings *repository.ReadingRepository
}

func NewReadingHandler(service *ingestion.Service, readings *repository.ReadingRepository) *ReadingHandler {
	return &ReadingHandler{service: service, readings: readings}
}

// SubmitReading accepts one multipart meter photo from the authenticated
// customer and runs it through the ingestion pipeline.
func (h *ReadingHandler) SubmitReading(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no meter photo attached"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read the uploaded photo"})
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read the uploaded photo"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reading, err := h.service.SubmitReading(c.Request.Context(), auth.UserID(c), photo, mimeType)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "meter reading submitted successfully",
		"reading": reading,
	})
}

// MyReadings lists the authenticated customer's readings, newest first.
func (h *ReadingHandler) MyReadings(c *gin.Context) {
	customerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid customer ID"})
		return
	}

	readings, err := h.readings.ListForCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": readings})
}
