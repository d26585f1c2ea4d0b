package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// StorageService keeps the original upload and returns the URL recorded on the resume.
type StorageService interface {
	SaveFile(file models.UploadedFile, analysisID string) (string, error)
	DeleteFile(fileURL string) error
}

// memoryStorage does not keep bytes; the URL only names the upload.
type memoryStorage struct{}

// diskStorage writes uploads under an absolute uploadPath.
type diskStorage struct {
	uploadPath string
}

// NewStorageService returns disk storage when uploadPath is set, otherwise a
// store that only records memory:// URLs.
func NewStorageService(uploadPath string) (StorageService, error) {
	if uploadPath == "" {
		return &memoryStorage{}, nil
	}

	absPath, err := filepath.Abs(uploadPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload directory: %w", err)
	}

	s := &diskStorage{uploadPath: absPath}
	if err := s.ensureUploadDir(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *memoryStorage) SaveFile(file models.UploadedFile, analysisID string) (string, error) {
	return fmt.Sprintf("memory://%s-%s", analysisID, file.Filename), nil
}

func (s *memoryStorage) DeleteFile(string) error {
	return nil
}

func (s *diskStorage) ensureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *diskStorage) SaveFile(file models.UploadedFile, analysisID string) (string, error) {
	name := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
	if name == "" || name == "." || name == "_" {
		name = "resume"
	}

	filePath := filepath.Join(s.uploadPath, fmt.Sprintf("%s_%s", analysisID, name))
	if err := os.WriteFile(filePath, file.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "file://" + filepath.ToSlash(filePath), nil
}

func (s *diskStorage) DeleteFile(fileURL string) error {
	filePath, ok := strings.CutPrefix(fileURL, "file://")
	if !ok {
		return fmt.Errorf("not a stored file: %s", fileURL)
	}

	filePath = filepath.FromSlash(filePath)
	if rel, err := filepath.Rel(s.uploadPath, filePath); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("file outside upload directory: %s", fileURL)
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
