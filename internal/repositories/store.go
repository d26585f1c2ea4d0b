package repositories

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Store is a keyed lookup table. Put overwrites silently, Get reports
// ErrNotFound for absent keys and Delete is idempotent.
type Store[V any] interface {
	Put(ctx context.Context, key string, value V) error
	Get(ctx context.Context, key string) (V, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]V, error)
}

// Namespaces used by the three store instances.
const (
	NamespaceAnalyses = "analyses"
	NamespaceChats    = "chats"
	NamespaceResumes  = "resumes"
)
