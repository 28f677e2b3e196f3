package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/marta/unhabits-api/internal/middleware"
	"github.com/marta/unhabits-api/internal/models"
)

// DayCount is one point of a trend series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UnhabitStats summarizes recent activity for one unhabit.
type UnhabitStats struct {
	UnhabitID  uuid.UUID  `json:"unhabitId"`
	Today      int        `json:"today"`
	Target     int        `json:"target"`
	OverTarget bool       `json:"overTarget"`
	Average    float64    `json:"average"`
	Last7Days  []DayCount `json:"last7Days"`
}

// GetUnhabitStats returns today's count, the all-time average and a
// zero-filled series for the past seven days, oldest first.
func GetUnhabitStats(c *fiber.Ctx) error {
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

	_, logs, err := tracking.FetchActive(c.Context(), userID)
	if err != nil {
		return storeError(c, err)
	}

	byDay := map[string]int{}
	total := 0
	entries := 0
	for _, l := range logs {
		if l.UnhabitID != unhabitID {
			continue
		}
		byDay[l.Date] = l.Count
		total += l.Count
		entries++
	}

	now := time.Now()
	today := models.Day(now)

	series := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := models.Day(now.AddDate(0, 0, -i))
		series = append(series, DayCount{Date: day, Count: byDay[day]})
	}

	average := 0.0
	if entries > 0 {
		average = float64(total) / float64(entries)
	}

	return c.JSON(UnhabitStats{
		UnhabitID:  unhabitID,
		Today:      byDay[today],
		Target:     unhabit.Target,
		OverTarget: byDay[today] > unhabit.Target,
		Average:    average,
		Last7Days:  series,
	})
}
