package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// GormStore persists JSON-encoded values in the kv_entries table, one namespace per store.
type GormStore[V any] struct {
	db        *gorm.DB
	namespace string
}

func NewGormStore[V any](db *gorm.DB, namespace string) *GormStore[V] {
	return &GormStore[V]{db: db, namespace: namespace}
}

func (s *GormStore[V]) Put(ctx context.Context, key string, value V) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", s.namespace, key, err)
	}

	now := time.Now()
	entry := models.KVEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     datatypes.JSON(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", s.namespace, key, err)
	}

	return nil
}

func (s *GormStore[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	var entry models.KVEntry
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("failed to get %s/%s: %w", s.namespace, key, err)
	}

	var value V
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		return zero, fmt.Errorf("failed to decode %s/%s: %w", s.namespace, key, err)
	}
	return value, nil
}

func (s *GormStore[V]) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND entry_key = ?", s.namespace, key).
		Delete(&models.KVEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", s.namespace, key, err)
	}
	return nil
}

func (s *GormStore[V]) List(ctx context.Context) ([]V, error) {
	var entries []models.KVEntry
	err := s.db.WithContext(ctx).
		Where("namespace = ?", s.namespace).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.namespace, err)
	}

	values := make([]V, 0, len(entries))
	for _, entry := range entries {
		var value V
		if err := json.Unmarshal(entry.Value, &value); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", s.namespace, entry.Key, err)
		}
		values = append(values, value)
	}
	return values, nil
}
