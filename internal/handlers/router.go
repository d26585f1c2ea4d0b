package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload *UploadHandler
	Result *ResultHandler
	Gemini *GeminiHandler
	Chat   *ChatHandler
	Resume *ResumeHandler
	Usage  *UsageHandler
}

// Register wires all API routes onto app.
func Register(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", h.Upload.HandleUpload)
	api.Get("/analysis/:id", h.Result.HandleGetResult)
	api.Post("/gemini", h.Gemini.HandleGenerate)

	chat := api.Group("/chat")
	chat.Get("/", h.Chat.HandleGetHistory)
	chat.Post("/", h.Chat.HandleAppend)
	chat.Delete("/", h.Chat.HandleClear)
	chat.Post("/ask", h.Chat.HandleAsk)

	resumes := api.Group("/resumes")
	resumes.Get("/", h.Resume.HandleList)
	resumes.Post("/", h.Resume.HandleCreate)
	resumes.Put("/", h.Resume.HandleUpdate)
	resumes.Delete("/", h.Resume.HandleDelete)

	api.Get("/usage", h.Usage.HandleGetUsage)
}

// ErrorHandler renders errors that escape a handler as {error, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
