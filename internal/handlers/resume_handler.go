package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type ResumeHandler struct {
	resumes services.ResumeService
}

func NewResumeHandler(resumes services.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

// HandleCreate handles POST /resumes
func (h *ResumeHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.Resume
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resume, err := h.resumes.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to save resume")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"resume":  resume,
	})
}

// HandleList handles GET /resumes?userId=
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.resumes.ListByUser(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, err, "Failed to fetch resumes")
	}

	return c.JSON(fiber.Map{
		"resumes": resumes,
	})
}

// HandleUpdate handles PUT /resumes
func (h *ResumeHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.ResumeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resume, err := h.resumes.Update(c.UserContext(), req.ResumeID, req.UpdateData)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		return respondError(c, err, "Failed to update resume")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"resume":  resume,
	})
}

// HandleDelete handles DELETE /resumes?resumeId=
func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.resumes.Delete(c.UserContext(), c.Query("resumeId")); err != nil {
		return respondError(c, err, "Failed to delete resume")
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
