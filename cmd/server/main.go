package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"electricity-billing-backend/internal/config"
	"electricity-billing-backend/internal/logging"
	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/repository"
	"electricity-billing-backend/internal/routes"
	"electricity-billing-backend/internal/services/accounts"
	"electricity-billing-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.ServiceName)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db := config.InitDB(cfg)

	db.AutoMigrate(
		&models.Customer{},
		&models.Officer{},
		&models.Admin{},
		&models.Tariff{},
		&models.PaymentSchedule{},
		&models.MeterReading{},
		&models.Payment{},
		&models.Complaint{},
		&models.SystemActivity{},
		&models.OfficerActivity{},
		&models.PasswordResetHistory{},
		&models.UsagePrediction{},
	)

	if err := accounts.SeedInitialAdmin(repository.NewAdminRepository(db), cfg.Admin.Name, cfg.Admin.Username, logger); err != nil {
		log.Fatalf("failed to seed initial admin: %v", err)
	}

	photoStore, err := storage.NewPhotoStore(context.Background(), cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Prefix)
	if err != nil {
		log.Fatalf("failed to init photo store: %v", err)
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, cfg, logger, photoStore)

	r.Run(fmt.Sprintf(":%d", cfg.ServicePort))
}
