package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type ResumeService interface {
	Create(ctx context.Context, resume models.Resume) (*models.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]models.Resume, error)
	Update(ctx context.Context, id string, updateData map[string]any) (*models.Resume, error)
	Delete(ctx context.Context, id string) error
}

type resumeService struct {
	resumeRepo repositories.ResumeRepository
	storage    StorageService
}

func NewResumeService(resumeRepo repositories.ResumeRepository, storage StorageService) ResumeService {
	return &resumeService{
		resumeRepo: resumeRepo,
		storage:    storage,
	}
}

func (s *resumeService) Create(ctx context.Context, resume models.Resume) (*models.Resume, error) {
	if resume.UserID == "" || resume.FileName == "" || resume.FileURL == "" {
		return nil, NewValidationError("Missing required fields")
	}

	resume.ID = uuid.NewString()
	resume.CreatedAt = time.Now()
	if err := s.resumeRepo.Create(ctx, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *resumeService) ListByUser(ctx context.Context, userID string) ([]models.Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewValidationError("Missing userId")
	}
	return s.resumeRepo.FindByUser(ctx, userID)
}

// Update merges updateData into the stored record. id and createdAt cannot be changed;
// keys that are not resume fields are kept in Extra.
func (s *resumeService) Update(ctx context.Context, id string, updateData map[string]any) (*models.Resume, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("Missing resumeId")
	}

	existing, err := s.resumeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, err := mergeResume(*existing, updateData)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("Invalid updateData: %v", err))
	}

	if err := s.resumeRepo.Update(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes the record and, for uploads kept on disk, the stored file.
// Deleting an unknown id succeeds.
func (s *resumeService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("Missing resumeId")
	}

	existing, err := s.resumeRepo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if existing != nil && strings.HasPrefix(existing.FileURL, "file://") {
		if err := s.storage.DeleteFile(existing.FileURL); err != nil {
			log.Printf("⚠️  Failed to delete stored file for resume %s: %v", id, err)
		}
	}

	return s.resumeRepo.Delete(ctx, id)
}

var resumeFields = map[string]bool{
	"userId": true, "fileName": true, "fileUrl": true, "fileType": true,
	"email": true, "name": true, "targetRole": true,
}

func mergeResume(existing models.Resume, updateData map[string]any) (*models.Resume, error) {
	existing.Extra = maps.Clone(existing.Extra)

	known := make(map[string]any)
	for k, v := range updateData {
		switch {
		case k == "id" || k == "createdAt":
		case resumeFields[k]:
			known[k] = v
		default:
			if existing.Extra == nil {
				existing.Extra = make(map[string]any)
			}
			existing.Extra[k] = v
		}
	}

	raw, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &existing); err != nil {
		return nil, err
	}
	return &existing, nil
}
