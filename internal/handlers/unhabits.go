package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/middleware"
	"github.com/marta/unhabits-api/internal/models"
)

// defaultReminderTime is used when reminders are toggled on with no time set.
const defaultReminderTime = "09:00"

func GetUnhabits(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	unhabits, logs, err := tracking.FetchActive(c.Context(), userID)
	if err != nil {
		return storeError(c, err)
	}

	if unhabits == nil {
		unhabits = []models.Unhabit{}
	}
	if logs == nil {
		logs = []models.Log{}
	}
	return c.JSON(fiber.Map{
		"unhabits": unhabits,
		"logs":     logs,
	})
}

func GetArchivedUnhabits(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	unhabits, err := tracking.FetchArchived(c.Context(), userID)
	if err != nil {
		return storeError(c, err)
	}

	if unhabits == nil {
		unhabits = []models.Unhabit{}
	}
	return c.JSON(unhabits)
}

func CreateUnhabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateUnhabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	if msg := validateName(req.Name); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}
	if req.Description != nil && len(*req.Description) > models.DescriptionMaxLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description must be less than 500 characters",
		})
	}
	if req.Target < 0 || req.Target > models.TargetMax {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target must be between 0 and 1000",
		})
	}
	if req.Frequency != "" && !models.ValidFrequencies[req.Frequency] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Frequency must be daily, weekly or monthly",
		})
	}

	unhabit, err := tracking.AddUnhabit(c.Context(), userID, req)
	if err != nil {
		return storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(unhabit)
}

func GetUnhabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	unhabitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unhabit ID",
		})
	}

	unhabit, err := tracking.GetUnhabit(c.Context(), userID, unhabitID)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(unhabit)
}

// UpdateUnhabit handles plain field edits and the reminder toggle. Enabling
// reminders without deliverable notifications fails up front so the user can
// fix their device settings; nothing is persisted for that attempt.
func UpdateUnhabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	unhabitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unhabit ID",
		})
	}

	var req models.UpdateUnhabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if msg := validateName(trimmed); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}
		req.Name = &trimmed
	}
	if req.Description != nil && len(*req.Description) > models.DescriptionMaxLen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description must be less than 500 characters",
		})
	}
	if req.Target != nil && (*req.Target < 0 || *req.Target > models.TargetMax) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target must be between 0 and 1000",
		})
	}
	if req.Frequency != nil && !models.ValidFrequencies[*req.Frequency] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Frequency must be daily, weekly or monthly",
		})
	}
	if req.NotificationTime != nil {
		if _, err := time.Parse("15:04", *req.NotificationTime); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Reminder time must be HH:MM",
			})
		}
	}

	enabling := req.NotificationEnabled != nil && *req.NotificationEnabled
	if enabling {
		if !reminders.RequestPermission(c.Context(), userID) {
			return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{
				"error": "Enable notifications on your device to receive reminders",
			})
		}
		if req.NotificationTime == nil {
			current, err := tracking.GetUnhabit(c.Context(), userID, unhabitID)
			if err != nil {
				return storeError(c, err)
			}
			if current.NotificationTime == nil {
				t := defaultReminderTime
				req.NotificationTime = &t
			}
		}
	}

	unhabit, err := tracking.UpdateUnhabit(c.Context(), userID, unhabitID, req)
	if err != nil {
		return storeError(c, err)
	}

	// Reconcile the armed reminder with the new state: cancel then
	// reschedule so a time change replaces the old trigger.
	if req.NotificationEnabled != nil || req.NotificationTime != nil {
		reminders.Cancel(unhabit.ID)
		if unhabit.NotificationEnabled && unhabit.NotificationTime != nil {
			if err := reminders.Schedule(*unhabit); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to schedule reminder",
				})
			}
		}
	}

	return c.JSON(unhabit)
}

func ArchiveUnhabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	unhabitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unhabit ID",
		})
	}

	unhabit, err := tracking.ArchiveUnhabit(c.Context(), userID, unhabitID)
	if err != nil {
		return storeError(c, err)
	}

	// Archived unhabits stop reminding until restored
	reminders.Cancel(unhabit.ID)

	return c.JSON(unhabit)
}

func RestoreUnhabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	unhabitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unhabit ID",
		})
	}

	unhabit, err := tracking.RestoreUnhabit(c.Context(), userID, unhabitID)
	if err != nil {
		return storeError(c, err)
	}

	if unhabit.NotificationEnabled && unhabit.NotificationTime != nil {
		if err := reminders.Schedule(*unhabit); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to schedule reminder",
			})
		}
	}

	return c.JSON(unhabit)
}

func validateName(name string) string {
	if len(name) < models.NameMinLen {
		return "Name must be at least 3 characters"
	}
	if len(name) > models.NameMaxLen {
		return "Name must be less than 50 characters"
	}
	return ""
}

// NotificationPermission reports whether reminders can reach the user.
func NotificationPermission(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	return c.JSON(fiber.Map{
		"granted": reminders.RequestPermission(c.Context(), userID),
	})
}
