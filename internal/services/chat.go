package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

// maxHistoryItems bounds how much of a transcript goes into one chat prompt.
const maxHistoryItems = 100

type ChatService interface {
	History(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error)
	Append(ctx context.Context, userID, sessionID string, message models.ChatMessage) ([]models.ChatMessage, error)
	Clear(ctx context.Context, userID, sessionID string) error
	Ask(ctx context.Context, userID, sessionID, text string) (*models.ChatMessage, []models.ChatMessage, error)
}

type chatService struct {
	chatRepo      repositories.ChatRepository
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewChatService(chatRepo repositories.ChatRepository, geminiService GeminiService) ChatService {
	return &chatService{
		chatRepo:      chatRepo,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

func (s *chatService) History(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	if err := validateChatKey(userID, sessionID); err != nil {
		return nil, err
	}
	return s.chatRepo.History(ctx, userID, sessionID)
}

func (s *chatService) Append(ctx context.Context, userID, sessionID string, message models.ChatMessage) ([]models.ChatMessage, error) {
	if err := validateChatKey(userID, sessionID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message.Text) == "" {
		return nil, NewValidationError("Missing required fields")
	}

	switch message.Sender {
	case "":
		message.Sender = models.SenderUser
	case models.SenderUser, models.SenderBot:
	default:
		return nil, NewValidationError(fmt.Sprintf("Invalid sender: %s", message.Sender))
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	return s.chatRepo.Append(ctx, userID, sessionID, message)
}

func (s *chatService) Clear(ctx context.Context, userID, sessionID string) error {
	if err := validateChatKey(userID, sessionID); err != nil {
		return err
	}
	return s.chatRepo.Clear(ctx, userID, sessionID)
}

// Ask stores the user's message, answers it with the transcript as context and stores the reply.
// The user's message is saved before the model is called and stays in the transcript when
// the call fails, so a retry shows the unanswered question.
func (s *chatService) Ask(ctx context.Context, userID, sessionID, text string) (*models.ChatMessage, []models.ChatMessage, error) {
	if !s.geminiService.Configured() {
		return nil, nil, ErrConfiguration
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, NewValidationError("Text content is required")
	}

	transcript, err := s.Append(ctx, userID, sessionID, models.ChatMessage{
		Text:   text,
		Sender: models.SenderUser,
	})
	if err != nil {
		return nil, nil, err
	}

	prompt := s.promptBuilder.BuildChatPrompt(text, models.ToHistory(transcript, maxHistoryItems))
	completion, err := s.geminiService.GenerateText(ctx, prompt, false)
	if err != nil {
		return nil, nil, err
	}

	reply := models.ChatMessage{
		ID:        uuid.NewString(),
		Text:      SanitizeChat(completion),
		Sender:    models.SenderBot,
		Timestamp: time.Now(),
	}

	transcript, err = s.chatRepo.Append(ctx, userID, sessionID, reply)
	if err != nil {
		return nil, nil, err
	}

	return &reply, transcript, nil
}

func validateChatKey(userID, sessionID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(sessionID) == "" {
		return NewValidationError("Missing userId or sessionId")
	}
	return nil
}
