package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/repository"
	"electricity-billing-backend/internal/services/accounts"
	"electricity-billing-backend/internal/services/complaints"
	"electricity-billing-backend/internal/services/forecasting"
)

// CustomerHandler covers the customer's self-service endpoints.
type CustomerHandler struct {
	accounts    *accounts.Service
	complaints  *complaints.Service
	forecasting *forecasting.Service
	payments    *repository.PaymentRepository
}

func NewCustomerHandler(
	accounts *accounts.Service,
	complaints *complaints.Service,
	forecasting *forecasting.Service,
	payments *repository.PaymentRepository,
) *CustomerHandler {
	return &CustomerHandler{
		accounts:    accounts,
		complaints:  complaints,
		forecasting: forecasting,
		payments:    payments,
	}
}

func (h *CustomerHandler) ChangePassword(c *gin.Context) {
	var payload struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "new password must be at least 8 characters"})
		return
	}

	if err := h.accounts.ChangeCustomerPassword(auth.UserID(c), payload.OldPassword, payload.NewPassword); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}

func (h *CustomerHandler) FileComplaint(c *gin.Context) {
	var payload struct {
		Subject     string `json:"subject" validate:"required"`
		Description string `json:"description" validate:"required"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "subject and description are required"})
		return
	}

	complaint, err := h.complaints.File(auth.UserID(c), payload.Subject, payload.Description)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "complaint filed", "complaint": complaint})
}

// MyPayments lists the authenticated customer's payments, newest first.
func (h *CustomerHandler) MyPayments(c *gin.Context) {
	customerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid customer ID"})
		return
	}

	payments, err := h.payments.ListForCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// UsageForecast runs the forecasting model over the customer's reading
// history and returns next month's predicted usage and meter value.
func (h *CustomerHandler) UsageForecast(c *gin.Context) {
	customerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid customer ID"})
		return
	}

	prediction, err := h.forecasting.ForecastUsage(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": prediction})
}
