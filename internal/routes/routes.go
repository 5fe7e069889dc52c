package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/clients/anomaly"
	"electricity-billing-backend/internal/clients/forecast"
	"electricity-billing-backend/internal/clients/vision"
	"electricity-billing-backend/internal/config"
	handler "electricity-billing-backend/internal/handlers"
	"electricity-billing-backend/internal/repository"
	"electricity-billing-backend/internal/services/accounts"
	"electricity-billing-backend/internal/services/activity"
	"electricity-billing-backend/internal/services/billing"
	"electricity-billing-backend/internal/services/complaints"
	"electricity-billing-backend/internal/services/forecasting"
	"electricity-billing-backend/internal/services/ingestion"
	"electricity-billing-backend/internal/storage"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger, photoStore *storage.PhotoStore) {
	customerRepo := repository.NewCustomerRepository(db)
	officerRepo := repository.NewOfficerRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	readingRepo := repository.NewReadingRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	tariffRepo := repository.NewTariffRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	officerActivityRepo := repository.NewOfficerActivityRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)

	issuer := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenExpiryHours)
	extractor := vision.NewExtractor(cfg.Vision.APIKey, cfg.Vision.BaseURL, cfg.Vision.Model)
	classifier := anomaly.NewClient(cfg.Anomaly.Command, cfg.Anomaly.Script, cfg.Anomaly.TimeoutSeconds)
	forecaster := forecast.NewClient(cfg.Forecast.Command, cfg.Forecast.Script, cfg.Forecast.TimeoutSeconds)

	accountsService := accounts.NewService(customerRepo, officerRepo, adminRepo, historyRepo, issuer, logger)
	activityService := activity.NewService(activityRepo, officerActivityRepo, logger)
	forecastingService := forecasting.NewService(readingRepo, predictionRepo, forecaster, logger)
	billingService := billing.NewService(scheduleRepo, tariffRepo, readingRepo, paymentRepo, customerRepo, logger)
	complaintsService := complaints.NewService(complaintRepo, customerRepo)
	ingestionService := ingestion.NewService(
		customerRepo,
		readingRepo,
		tariffRepo,
		scheduleRepo,
		extractor,
		classifier,
		photoStore,
		logger,
	)

	authHandler := handler.NewAuthHandler(accountsService, activityService)
	readingHandler := handler.NewReadingHandler(ingestionService, readingRepo)
	customerHandler := handler.NewCustomerHandler(accountsService, complaintsService, forecastingService, paymentRepo)
	officerHandler := handler.NewOfficerHandler(accountsService, billingService, complaintsService, activityService, customerRepo, complaintRepo)
	adminHandler := handler.NewAdminHandler(accountsService, activityService, officerRepo, customerRepo, historyRepo)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/auth/login", authHandler.Login)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Customer routes
	customer := api.Group("/customer")
	customer.Use(auth.Middleware(issuer), auth.RequireRole(auth.RoleCustomer))
	customer.POST("/submit-reading", readingHandler.SubmitReading)
	customer.GET("/my-readings", readingHandler.MyReadings)
	customer.GET("/my-payments", customerHandler.MyPayments)
	customer.POST("/usage-forecast", customerHandler.UsageForecast)
	customer.POST("/change-password", customerHandler.ChangePassword)
	customer.POST("/file-complaint", customerHandler.FileComplaint)

	// Officer routes
	officer := api.Group("/officer")
	officer.Use(auth.Middleware(issuer), auth.RequireRole(auth.RoleOfficer))
	officer.POST("/add-customer", officerHandler.CreateCustomer)
	officer.POST("/search-customer", officerHandler.SearchCustomers)
	officer.GET("/get-customers", officerHandler.ListCustomers)
	officer.POST("/create-schedule", officerHandler.CreateSchedule)
	officer.POST("/schedules/:id/open", officerHandler.OpenSchedule)
	officer.POST("/schedules/:id/close", officerHandler.CloseSchedule)
	officer.GET("/schedules", officerHandler.ListSchedules)
	officer.POST("/assign-tariff", officerHandler.AssignTariff)
	officer.POST("/pay-manually", officerHandler.RecordManualReading)
	officer.POST("/readings/:id/pay", officerHandler.MarkReadingPaid)
	officer.GET("/get-missed-payments", officerHandler.MissedPayments)
	officer.GET("/customer-complaints", officerHandler.ListComplaints)
	officer.POST("/search-customer-complaints", officerHandler.SearchComplaints)
	officer.PUT("/update-complaint-status", officerHandler.UpdateComplaintStatus)
	officer.GET("/my-activities", officerHandler.MyActivities)
	officer.GET("/search-my-activities", officerHandler.SearchMyActivities)
	officer.POST("/change-password", officerHandler.ChangePassword)
	officer.GET("/get-officer-stats", officerHandler.Stats)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(auth.Middleware(issuer), auth.RequireRole(auth.RoleAdmin))
	admin.POST("/add-admin", adminHandler.CreateAdmin)
	admin.POST("/add-officer", adminHandler.CreateOfficer)
	admin.POST("/search-officer", adminHandler.SearchOfficers)
	admin.GET("/get-officers", adminHandler.ListOfficers)
	admin.POST("/ad-officer", adminHandler.ActivateDeactivateOfficer)
	admin.POST("/ad-customer", adminHandler.ActivateDeactivateCustomer)
	admin.POST("/reset-officer-password", adminHandler.ResetOfficerPassword)
	admin.POST("/reset-customer-password", adminHandler.ResetCustomerPassword)
	admin.POST("/update-profile", adminHandler.UpdateProfile)
	admin.GET("/password-reset-history", adminHandler.PasswordResetHistory)
	admin.GET("/system-activities", adminHandler.SystemActivities)
}
