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
	"electricity-billing-backend/internal/services/billing"
	"electricity-billing-backend/internal/services/complaints"
)

// OfficerHandler covers customer management, billing periods, tariffs,
// manual payments and complaint handling.
type OfficerHandler struct {
	accounts      *accounts.Service
	billing       *billing.Service
	complaints    *complaints.Service
	activity      *activity.Service
	customerRepo  *repository.CustomerRepository
	complaintRepo *repository.ComplaintRepository
}

func NewOfficerHandler(
	accounts *accounts.Service,
	billing *billing.Service,
	complaints *complaints.Service,
	activity *activity.Service,
	customerRepo *repository.CustomerRepository,
	complaintRepo *repository.ComplaintRepository,
) *OfficerHandler {
	return &OfficerHandler{
		accounts:      accounts,
		billing:       billing,
		complaints:    complaints,
		activity:      activity,
		customerRepo:  customerRepo,
		complaintRepo: complaintRepo,
	}
}

type createCustomerPayload struct {
	Name          string  `json:"name" validate:"required"`
	Region        string  `json:"region" validate:"required"`
	ServiceCenter string  `json:"service_center" validate:"required"`
	AddressRegion string  `json:"address_region" validate:"required"`
	Zone          string  `json:"zone" validate:"required"`
	Woreda        string  `json:"woreda" validate:"required"`
	Town          string  `json:"town" validate:"required"`
	Purpose       string  `json:"purpose" validate:"required"`
	PowerApproved float64 `json:"power_approved" validate:"required"`
	Volt          float64 `json:"volt" validate:"required"`
	DepositBirr   float64 `json:"deposit_birr"`
	MeterReaderSN string  `json:"meter_reader_sn" validate:"required"`
	EnergyTariff  float64 `json:"energy_tariff" validate:"required,gt=0"`
	ServiceCharge float64 `json:"service_charge" validate:"gte=0"`
}

// CreateCustomer registers a customer together with their tariff; the
// generated account number and one-time password are returned to the officer.
func (h *OfficerHandler) CreateCustomer(c *gin.Context) {
	var payload createCustomerPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	customer := &models.Customer{
		Name:          payload.Name,
		Region:        payload.Region,
		ServiceCenter: payload.ServiceCenter,
		AddressRegion: payload.AddressRegion,
		Zone:          payload.Zone,
		Woreda:        payload.Woreda,
		Town:          payload.Town,
		Purpose:       payload.Purpose,
		PowerApproved: payload.PowerApproved,
		Volt:          payload.Volt,
		DepositBirr:   payload.DepositBirr,
		MeterReaderSN: payload.MeterReaderSN,
	}

	accountNumber, password, err := h.accounts.CreateCustomer(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.billing.AssignTariff(customer.ID, payload.EnergyTariff, payload.ServiceCharge); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.activity.Record("Customer account created", auth.Username(c), models.ActivitySuccess, c.ClientIP())
	if officerID, err := parseUUID(auth.UserID(c)); err == nil {
		h.activity.RecordOfficer(officerID, "Created customer account "+accountNumber)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Account created Successfully",
		"accountNumber": accountNumber,
		"password":      password,
	})
}

func (h *OfficerHandler) SearchCustomers(c *gin.Context) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customers, err := h.customerRepo.SearchByName(payload.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *OfficerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *OfficerHandler) CreateSchedule(c *gin.Context) {
	var payload struct {
		YearAndMonth string `json:"year_and_month" validate:"required"`
		StartDate    string `json:"normal_payment_start_date" validate:"required"`
		EndDate      string `json:"normal_payment_end_date" validate:"required"`
		Open         bool   `json:"open"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	schedule, err := h.billing.CreateSchedule(payload.YearAndMonth, payload.StartDate, payload.EndDate, payload.Open)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "schedule created", "schedule": schedule})
}

func (h *OfficerHandler) OpenSchedule(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	schedule, err := h.billing.OpenSchedule(id)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule opened", "schedule": schedule})
}

func (h *OfficerHandler) CloseSchedule(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule ID"})
		return
	}

	schedule, err := h.billing.CloseSchedule(id)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule closed", "schedule": schedule})
}

func (h *OfficerHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.billing.ListSchedules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *OfficerHandler) AssignTariff(c *gin.Context) {
	var payload struct {
		CustomerID    string  `json:"customer_id" validate:"required,uuid"`
		EnergyTariff  float64 `json:"energy_tariff" validate:"required,gt=0"`
		ServiceCharge float64 `json:"service_charge" validate:"gte=0"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	customerID, err := parseUUID(payload.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}

	tariff, err := h.billing.AssignTariff(customerID, payload.EnergyTariff, payload.ServiceCharge)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tariff assigned", "tariff": tariff})
}

// RecordManualReading lets an officer bill a customer at the counter with a
// typed-in kilowatt value, optionally taking the payment immediately.
func (h *OfficerHandler) RecordManualReading(c *gin.Context) {
	var payload struct {
		AccountNumber string  `json:"account_number" validate:"required"`
		KillowatRead  float64 `json:"killowat_read" validate:"gte=0"`
		MarkPaid      bool    `json:"mark_paid"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	officerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid officer ID"})
		return
	}

	reading, err := h.billing.RecordManualReading(payload.AccountNumber, payload.KillowatRead, payload.MarkPaid, officerID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	h.activity.Record("Manual meter reading recorded", auth.Username(c), models.ActivitySuccess, c.ClientIP())
	h.activity.RecordOfficer(officerID, "Recorded manual reading for customer "+payload.AccountNumber)
	c.JSON(http.StatusCreated, gin.H{"message": "reading recorded", "reading": reading})
}

func (h *OfficerHandler) MarkReadingPaid(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reading ID"})
		return
	}

	officerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid officer ID"})
		return
	}

	reading, err := h.billing.MarkReadingPaid(id, officerID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment recorded", "reading": reading})
}

func (h *OfficerHandler) MissedPayments(c *gin.Context) {
	accountNumber := c.Query("account_number")
	if accountNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_number is required"})
		return
	}

	missed, err := h.billing.MissedMonths(accountNumber)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"missed": missed})
}

func (h *OfficerHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.complaints.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *OfficerHandler) SearchComplaints(c *gin.Context) {
	var payload struct {
		AccountNumber string `json:"account_number"`
		Status        string `json:"status"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	complaints, err := h.complaints.Search(payload.AccountNumber, payload.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

func (h *OfficerHandler) UpdateComplaintStatus(c *gin.Context) {
	var payload struct {
		ID     string `json:"id" validate:"required,uuid"`
		Status string `json:"status" validate:"required,oneof='Open' 'In Progress' 'Resolved'"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	complaintID, err := parseUUID(payload.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint ID"})
		return
	}

	officerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid officer ID"})
		return
	}

	complaint, err := h.complaints.UpdateStatus(complaintID, payload.Status, officerID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}

	h.activity.RecordOfficer(officerID, "Updated complaint status to "+payload.Status)
	c.JSON(http.StatusOK, gin.H{"message": "complaint updated", "complaint": complaint})
}

// MyActivities lists the officer's own activity feed, newest first.
func (h *OfficerHandler) MyActivities(c *gin.Context) {
	officerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid officer ID"})
		return
	}

	activities, err := h.activity.OfficerActivities(officerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// SearchMyActivities filters the officer's feed by activity text.
func (h *OfficerHandler) SearchMyActivities(c *gin.Context) {
	officerID, err := parseUUID(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid officer ID"})
		return
	}

	activities, err := h.activity.SearchOfficerActivities(officerID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (h *OfficerHandler) ChangePassword(c *gin.Context) {
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

	if err := h.accounts.ChangeOfficerPassword(auth.UserID(c), payload.OldPassword, payload.NewPassword); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}

// Stats powers the officer dashboard header.
func (h *OfficerHandler) Stats(c *gin.Context) {
	customerCount, err := h.customerRepo.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	openComplaints, err := h.complaintRepo.CountByStatus(models.ComplaintOpen)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":       customerCount,
		"open_complaints": openComplaints,
	})
}
