package repositories

import (
	"context"
	"fmt"
	"sort"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	FindByID(ctx context.Context, id string) (*models.Resume, error)
	FindByUser(ctx context.Context, userID string) ([]models.Resume, error)
	Update(ctx context.Context, resume *models.Resume) error
	Delete(ctx context.Context, id string) error
}

type resumeRepository struct {
	store Store[models.Resume]
}

func NewResumeRepository(store Store[models.Resume]) ResumeRepository {
	return &resumeRepository{store: store}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	if err := r.store.Put(ctx, resume.ID, *resume); err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(ctx context.Context, id string) (*models.Resume, error) {
	resume, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find resume %s: %w", id, err)
	}
	return &resume, nil
}

// FindByUser implements ResumeRepository. Newest first.
func (r *resumeRepository) FindByUser(ctx context.Context, userID string) ([]models.Resume, error) {
	all, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	resumes := []models.Resume{}
	for _, resume := range all {
		if resume.UserID == userID {
			resumes = append(resumes, resume)
		}
	}

	sort.SliceStable(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})
	return resumes, nil
}

// Update implements ResumeRepository.
func (r *resumeRepository) Update(ctx context.Context, resume *models.Resume) error {
	if _, err := r.store.Get(ctx, resume.ID); err != nil {
		return fmt.Errorf("failed to update resume %s: %w", resume.ID, err)
	}
	if err := r.store.Put(ctx, resume.ID, *resume); err != nil {
		return fmt.Errorf("failed to update resume %s: %w", resume.ID, err)
	}
	return nil
}

// Delete implements ResumeRepository.
func (r *resumeRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}
