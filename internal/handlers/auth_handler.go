package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/services/accounts"
	"electricity-billing-backend/internal/services/activity"
)

type AuthHandler struct {
	accounts *accounts.Service
	activity *activity.Service
}

func NewAuthHandler(accounts *accounts.Service, activity *activity.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts, activity: activity}
}

// Login handles the unified login for customers, officers and admins.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.accounts.UnifiedLogin(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrBadCredentials):
			h.activity.Record("Failed login attempt", payload.Username, models.ActivityWarning, c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
		case errors.Is(err, accounts.ErrAccountDeactivated):
			h.activity.Record("Deactivated account login attempt", payload.Username, models.ActivityWarning, c.ClientIP())
			c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.activity.Record(loginEvent(result.Role), result.Username, models.ActivitySuccess, c.ClientIP())
	if result.Role == auth.RoleOfficer {
		h.activity.RecordOfficer(result.ID, "Logged in")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"role":    result.Role,
		"userInfo": gin.H{
			"id":       result.ID,
			"name":     result.Name,
			"username": result.Username,
		},
		"token": result.Token,
	})
}

func loginEvent(role string) string {
	switch role {
	case "customer":
		return "Customer logged in"
	case "officer":
		return "Officer logged in"
	default:
		return "Admin logged in"
	}
}
