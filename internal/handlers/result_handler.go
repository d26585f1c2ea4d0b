package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type ResultHandler struct {
	analyzer services.AnalyzerService
}

func NewResultHandler(analyzer services.AnalyzerService) *ResultHandler {
	return &ResultHandler{
		analyzer: analyzer,
	}
}

// HandleGetResult handles GET /analysis/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysis, err := h.analyzer.GetAnalysis(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Analysis not found",
			})
		}
		return respondError(c, err, "Internal server error")
	}

	return c.JSON(models.ResultResponse{Result: analysis})
}
