package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type GeminiHandler struct {
	analyzer services.AnalyzerService
}

func NewGeminiHandler(analyzer services.AnalyzerService) *GeminiHandler {
	return &GeminiHandler{analyzer: analyzer}
}

// HandleGenerate handles POST /gemini
func (h *GeminiHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.PromptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resp, err := h.analyzer.Generate(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to analyze with Gemini AI")
	}

	return c.JSON(resp)
}
