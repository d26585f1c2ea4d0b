package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type UploadHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewUploadHandler(
	analyzer services.AnalyzerService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	email := c.FormValue("email")
	if err != nil || fileHeader == nil || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing file or email",
		})
	}

	// Reject before anything is read or parsed
	if err := services.ValidateUploadSize(fileHeader.Size, h.maxFileSize); err != nil {
		return respondError(c, err, "Internal server error")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return respondError(c, err, "Internal server error")
	}
	if err := services.ValidateUploadSize(int64(len(data)), h.maxFileSize); err != nil {
		return respondError(c, err, "Internal server error")
	}

	analysis, err := h.analyzer.AnalyzeUpload(c.UserContext(), services.UploadInput{
		File: models.UploadedFile{
			Data:     data,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Filename: fileHeader.Filename,
		},
		Email:          email,
		Name:           c.FormValue("name"),
		TargetRole:     c.FormValue("targetRole"),
		JobDescription: c.FormValue("jobDescription"),
	})
	if err != nil {
		return respondError(c, err, "Failed to analyze resume")
	}

	response := models.UploadResponse{
		AnalysisID:  analysis.ID,
		RedirectURL: "/analysis/" + analysis.ID,
		Analysis:    analysis,
	}
	if c.Query("debug") == "1" {
		textLength := analysis.Parse.TextLength
		response.TextLength = &textLength
		response.FileType = analysis.Parse.File.Mime
		response.FileName = analysis.Parse.File.Name
	}

	return c.JSON(response)
}
