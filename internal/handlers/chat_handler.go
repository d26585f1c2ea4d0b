package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// HandleGetHistory handles GET /chat?userId=&sessionId=
func (h *ChatHandler) HandleGetHistory(c *fiber.Ctx) error {
	messages, err := h.chat.History(c.UserContext(), c.Query("userId"), c.Query("sessionId"))
	if err != nil {
		return respondError(c, err, "Failed to fetch chat history")
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// HandleAppend handles POST /chat
func (h *ChatHandler) HandleAppend(c *fiber.Ctx) error {
	var req models.ChatAppendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.UserID == "" || req.SessionID == "" || req.Message.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	messages, err := h.chat.Append(c.UserContext(), req.UserID, req.SessionID, req.Message)
	if err != nil {
		return respondError(c, err, "Failed to save chat message")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"chatHistory": models.ChatHistory{
			UserID:    req.UserID,
			SessionID: req.SessionID,
			Messages:  messages,
		},
	})
}

// HandleClear handles DELETE /chat?userId=&sessionId=
func (h *ChatHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.chat.Clear(c.UserContext(), c.Query("userId"), c.Query("sessionId")); err != nil {
		return respondError(c, err, "Failed to delete chat history")
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleAsk handles POST /chat/ask
func (h *ChatHandler) HandleAsk(c *fiber.Ctx) error {
	var req models.ChatAskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	reply, messages, err := h.chat.Ask(c.UserContext(), req.UserID, req.SessionID, req.Text)
	if err != nil {
		return respondError(c, err, "Failed to get a reply from Gemini AI")
	}

	return c.JSON(fiber.Map{
		"reply":    reply,
		"messages": messages,
	})
}
