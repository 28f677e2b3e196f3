package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/marta/unhabits-api/internal/notify"
	"github.com/marta/unhabits-api/internal/store"
)

var (
	tracking  *store.Store
	reminders *notify.Scheduler
)

// Init wires the handlers to the tracking store and reminder scheduler.
func Init(s *store.Store, sched *notify.Scheduler) {
	tracking = s
	reminders = sched
}

// storeError maps a tracking-store failure onto an HTTP response.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, store.ErrInvalidCount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Count must be at least 1",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong",
		})
	}
}
