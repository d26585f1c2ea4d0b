package repositories

import (
	"context"
	"fmt"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	FindByID(ctx context.Context, id string) (*models.Analysis, error)
	Delete(ctx context.Context, id string) error
}

type analysisRepository struct {
	store Store[models.Analysis]
}

func NewAnalysisRepository(store Store[models.Analysis]) AnalysisRepository {
	return &analysisRepository{store: store}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	if analysis.ID == "" {
		return fmt.Errorf("analysis id is required")
	}
	if err := r.store.Put(ctx, analysis.ID, *analysis); err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// FindByID implements AnalysisRepository.
func (r *analysisRepository) FindByID(ctx context.Context, id string) (*models.Analysis, error) {
	analysis, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis %s: %w", id, err)
	}
	return &analysis, nil
}

// Delete implements AnalysisRepository.
func (r *analysisRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
