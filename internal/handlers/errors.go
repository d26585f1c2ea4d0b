package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// respondError converts service errors into a JSON {error} body.
// fallback is the client-facing message for unexpected and upstream failures;
// the underlying error is only logged.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *services.ValidationError
	var upstreamErr *services.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(validationErr.Status).JSON(fiber.Map{
			"error": validationErr.Message,
		})
	case errors.Is(err, services.ErrConfiguration):
		log.Printf("❌ %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": services.ErrConfiguration.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.As(err, &upstreamErr):
		log.Printf("❌ Upstream failure: %v", err)
	default:
		log.Printf("❌ %s: %v", fallback, err)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}
