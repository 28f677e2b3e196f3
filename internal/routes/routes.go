package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marta/unhabits-api/internal/handlers"
	"github.com/marta/unhabits-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Get("/verify", handlers.VerifyEmail)

	protected := api.Group("/", middleware.Protected())

	protected.Post("/auth/logout", handlers.Logout)
	protected.Get("/me", handlers.GetMe)

	unhabits := protected.Group("/unhabits")
	unhabits.Get("/archived", handlers.GetArchivedUnhabits)
	unhabits.Get("/", handlers.GetUnhabits)
	unhabits.Post("/", handlers.CreateUnhabit)
	unhabits.Get("/:id", handlers.GetUnhabit)
	unhabits.Put("/:id", handlers.UpdateUnhabit)
	unhabits.Post("/:id/archive", handlers.ArchiveUnhabit)
	unhabits.Post("/:id/restore", handlers.RestoreUnhabit)

	unhabits.Post("/:id/logs", handlers.LogOccurrence)
	unhabits.Get("/:id/logs", handlers.GetUnhabitLogs)
	unhabits.Get("/:id/stats", handlers.GetUnhabitStats)

	logs := protected.Group("/logs")
	logs.Get("/", handlers.GetLogs)
	logs.Put("/:id", handlers.UpdateLog)

	// Reminder plumbing
	protected.Get("/notifications/permission", handlers.NotificationPermission)
	protected.Post("/device-token", handlers.RegisterDeviceToken)
}
