package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/marta/unhabits-api/internal/database"
	"github.com/marta/unhabits-api/internal/middleware"
	"github.com/marta/unhabits-api/internal/models"
)

// RegisterDeviceToken saves the FCM token reminders are delivered to
func RegisterDeviceToken(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token is required",
		})
	}

	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", req.Token)

	return c.JSON(fiber.Map{"success": true})
}
