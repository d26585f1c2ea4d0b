package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// UsageHandler reports a fixed quota; nothing is counted.
type UsageHandler struct {
	limit int
}

func NewUsageHandler(limit int) *UsageHandler {
	return &UsageHandler{limit: limit}
}

// HandleGetUsage handles GET /usage?email=
func (h *UsageHandler) HandleGetUsage(c *fiber.Ctx) error {
	if c.Query("email") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing email",
		})
	}

	return c.JSON(models.UsageResponse{
		Used:      0,
		Remaining: h.limit,
		Limit:     h.limit,
	})
}
