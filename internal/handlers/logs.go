package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/middleware"
	"github.com/marta/unhabits-api/internal/models"
)

func GetLogs(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	_, logs, err := tracking.FetchActive(c.Context(), userID)
	if err != nil {
		return storeError(c, err)
	}

	if logs == nil {
		logs = []models.Log{}
	}
	return c.JSON(logs)
}

// LogOccurrence records one occurrence of the unhabit for the given day
// (today when omitted). The first occurrence of a day creates the row;
// repeats increment it in place.
func LogOccurrence(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	unhabitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unhabit ID",
		})
	}

	var req models.LogOccurrenceRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	day := req.Date
	if day == "" {
		day = models.Day(time.Now())
	} else if _, err := time.Parse(models.DayFormat, day); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date must be YYYY-MM-DD",
		})
	}

	entry, err := tracking.LogOccurrence(c.Context(), userID, unhabitID, day, req.Note)
	if err != nil {
		return storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func GetUnhabitLogs(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	unhabitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid unhabit ID",
		})
	}

	if _, err := tracking.GetUnhabit(c.Context(), userID, unhabitID); err != nil {
		return storeError(c, err)
	}

	_, logs, err := tracking.FetchActive(c.Context(), userID)
	if err != nil {
		return storeError(c, err)
	}

	filtered := []models.Log{}
	for _, l := range logs {
		if l.UnhabitID == unhabitID {
			filtered = append(filtered, l)
		}
	}
	return c.JSON(filtered)
}

func UpdateLog(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	logID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid log ID",
		})
	}

	var req models.UpdateLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := tracking.UpdateLog(c.Context(), userID, logID, req.Count)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(entry)
}
