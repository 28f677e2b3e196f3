package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/marta/unhabits-api/internal/config"
	"github.com/marta/unhabits-api/internal/database"
	"github.com/marta/unhabits-api/internal/handlers"
	"github.com/marta/unhabits-api/internal/models"
	"github.com/marta/unhabits-api/internal/notify"
	"github.com/marta/unhabits-api/internal/routes"
	"github.com/marta/unhabits-api/internal/services"
	"github.com/marta/unhabits-api/internal/store"
	"github.com/marta/unhabits-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger.Init()
	logger.Log.Info("logger initialized")

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Database connection error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Database migration error: %v", err)
	}

	if err := services.InitPush(cfg.FCMServiceAccount); err != nil {
		log.Fatalf("Push initialization error: %v", err)
	}

	tracking := store.New(database.DB)
	scheduler := notify.NewScheduler(services.Push, nil)
	defer scheduler.Stop()

	// Re-arm reminders for every enabled unhabit across restarts
	var enabled []models.Unhabit
	if err := database.DB.
		Where("notification_enabled = ? AND archived = ?", true, false).
		Find(&enabled).Error; err != nil {
		logger.Log.WithError(err).Warn("failed to load reminders")
	}
	scheduler.ScheduleAll(enabled)

	handlers.Init(tracking, scheduler)

	app := fiber.New(fiber.Config{
		AppName: "unhabits-api",
	})
	routes.Setup(app)

	logger.Log.WithField("port", cfg.Port).Info("server starting")
	log.Fatal(app.Listen(":" + cfg.Port))
}
