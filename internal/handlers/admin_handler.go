package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"electricity-billing-backend/internal/apperr"
	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/repository"
	"electricity-billing-backend/internal/services/accounts"
	"electricity-billing-backend/internal/services/activity"
)

// AdminHandler covers officer management and the system activity log.
type AdminHandler struct {
	accounts     *accounts.Service
	activity     *activity.Service
	officerRepo  *repository.OfficerRepository
	customerRepo *repository.CustomerRepository
	historyRepo  *repository.HistoryRepository
}

func NewAdminHandler(
	accounts *accounts.Service,
	activity *activity.Service,
	officerRepo *repository.OfficerRepository,
	customerRepo *repository.CustomerRepository,
	historyRepo *repository.HistoryRepository,
) *AdminHandler {
	return &AdminHandler{
		accounts:     accounts,
		activity:     activity,
		officerRepo:  officerRepo,
		customerRepo: customerRepo,
		historyRepo:  historyRepo,
	}
}

// CreateAdmin registers another admin; the first one is seeded at startup.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var payload struct {
		Name     string `json:"name" validate:"required"`
		Username string `json:"username" validate:"required,min=3"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	admin := &models.Admin{
		Name:     payload.Name,
		Username: payload.Username,
	}
	if err := h.accounts.CreateAdmin(admin, payload.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record("Admin account created", auth.Username(c), models.ActivitySuccess, c.ClientIP())

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created successfully",
		"username": admin.Username,
	})
}

func (h *AdminHandler) CreateOfficer(c *gin.Context) {
	var payload struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"omitempty,email"`
		Username string `json:"username" validate:"required,min=3"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	officer := &models.Officer{
		Name:     payload.Name,
		Email:    payload.Email,
		Username: payload.Username,
	}
	password, err := h.accounts.CreateOfficer(officer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record("Officer account created", auth.Username(c), models.ActivitySuccess, c.ClientIP())

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created successfully",
		"username": officer.Username,
		"password": password,
	})
}

func (h *AdminHandler) SearchOfficers(c *gin.Context) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	officers, err := h.officerRepo.SearchByName(payload.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, officers)
}

func (h *AdminHandler) ListOfficers(c *gin.Context) {
	officers, err := h.officerRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, officers)
}

// ActivateDeactivateOfficer toggles an officer's access.
func (h *AdminHandler) ActivateDeactivateOfficer(c *gin.Context) {
	var payload struct {
		ID       string `json:"id" validate:"required,uuid"`
		IsActive bool   `json:"is_active"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	officer, err := h.officerRepo.SetActive(payload.ID, payload.IsActive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "officer not found"})
		return
	}

	event := "Officer deactivated"
	if payload.IsActive {
		event = "Officer activated"
	}
	h.activity.Record(event, auth.Username(c), models.ActivityInfo, c.ClientIP())

	c.JSON(http.StatusOK, officer)
}

// ActivateDeactivateCustomer toggles a customer's access.
func (h *AdminHandler) ActivateDeactivateCustomer(c *gin.Context) {
	var payload struct {
		ID       string `json:"id" validate:"required,uuid"`
		IsActive bool   `json:"is_active"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customerRepo.SetActive(payload.ID, payload.IsActive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}

	event := "Customer deactivated"
	if payload.IsActive {
		event = "Customer activated"
	}
	h.activity.Record(event, auth.Username(c), models.ActivityInfo, c.ClientIP())

	c.JSON(http.StatusOK, customer)
}

func (h *AdminHandler) ResetOfficerPassword(c *gin.Context) {
	var payload struct {
		ID string `json:"id" validate:"required,uuid"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	password, err := h.accounts.ResetOfficerPassword(payload.ID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	h.activity.Record("Officer password reset", auth.Username(c), models.ActivityWarning, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Officer password reset successfully",
		"password": password,
	})
}

func (h *AdminHandler) ResetCustomerPassword(c *gin.Context) {
	var payload struct {
		ID string `json:"id" validate:"required,uuid"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	password, err := h.accounts.ResetCustomerPassword(payload.ID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	h.activity.Record("Customer password reset", auth.Username(c), models.ActivityWarning, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Customer password reset successfully",
		"password": password,
	})
}

// UpdateProfile changes the admin's own name, username or password.
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var payload struct {
		Name        string `json:"name"`
		Username    string `json:"username"`
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	admin, err := h.accounts.UpdateAdmin(auth.UserID(c), payload.Name, payload.Username, payload.OldPassword, payload.NewPassword)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated successfully",
		"result": gin.H{
			"id":       admin.ID,
			"name":     admin.Name,
			"username": admin.Username,
		},
	})
}

// PasswordResetHistory lists every password reset, newest first.
func (h *AdminHandler) PasswordResetHistory(c *gin.Context) {
	resets, err := h.historyRepo.ListPasswordResets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch password reset history"})
		return
	}
	c.JSON(http.StatusOK, resets)
}

// SystemActivities lists the activity log, newest first.
func (h *AdminHandler) SystemActivities(c *gin.Context) {
	activities, err := h.activity.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch system activities"})
		return
	}
	c.JSON(http.StatusOK, activities)
}
