package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type ChatRepository interface {
	Append(ctx context.Context, userID, sessionID string, messages ...models.ChatMessage) ([]models.ChatMessage, error)
	History(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error)
	Clear(ctx context.Context, userID, sessionID string) error
}

type chatRepository struct {
	store Store[[]models.ChatMessage]
	// serializes Append's read-modify-write against other writers
	mu sync.Mutex
}

func NewChatRepository(store Store[[]models.ChatMessage]) ChatRepository {
	return &chatRepository{store: store}
}

func ChatKey(userID, sessionID string) string {
	return userID + "-" + sessionID
}

// Append implements ChatRepository. It returns the full transcript after appending.
func (r *chatRepository) Append(ctx context.Context, userID, sessionID string, messages ...models.ChatMessage) ([]models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ChatKey(userID, sessionID)
	existing, err := r.store.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to load chat %s: %w", key, err)
	}

	updated := make([]models.ChatMessage, 0, len(existing)+len(messages))
	updated = append(updated, existing...)
	updated = append(updated, messages...)

	if err := r.store.Put(ctx, key, updated); err != nil {
		return nil, fmt.Errorf("failed to save chat %s: %w", key, err)
	}
	return updated, nil
}

// History implements ChatRepository. A missing transcript is an empty one.
func (r *chatRepository) History(ctx context.Context, userID, sessionID string) ([]models.ChatMessage, error) {
	key := ChatKey(userID, sessionID)
	messages, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []models.ChatMessage{}, nil
		}
		return nil, fmt.Errorf("failed to load chat %s: %w", key, err)
	}
	return messages, nil
}

// Clear implements ChatRepository.
func (r *chatRepository) Clear(ctx context.Context, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Delete(ctx, ChatKey(userID, sessionID))
}
