package models

import "time"

type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderBot  ChatSender = "bot"
)

type ChatMessage struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Sender    ChatSender `json:"sender"`
	Timestamp time.Time  `json:"timestamp"`
}

// HistoryEntry is the model-facing projection of a ChatMessage.
type HistoryEntry struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"ts"`
}

// ToHistory projects stored messages into prompt history, keeping at most limit recent entries.
func ToHistory(messages []ChatMessage, limit int) []HistoryEntry {
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	history := make([]HistoryEntry, 0, len(messages))
	for _, m := range messages {
		role := "assistant"
		if m.Sender == SenderUser {
			role = "user"
		}
		history = append(history, HistoryEntry{
			Role:      role,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}
	return history
}
