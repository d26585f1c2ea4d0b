package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

func TestMemoryStorageOnlyNamesUpload(t *testing.T) {
	storage, err := NewStorageService("")
	require.NoError(t, err)

	url, err := storage.SaveFile(models.UploadedFile{Filename: "cv.pdf", Data: []byte("x")}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "memory://abc-cv.pdf", url)
	assert.NoError(t, storage.DeleteFile(url))
}

func TestDiskStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := NewStorageService(dir)
	require.NoError(t, err)

	url, err := storage.SaveFile(models.UploadedFile{
		Filename: "../../My Resume (final).pdf",
		Data:     []byte("%PDF-1.4"),
	}, "abc")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "file://"), url)

	path := filepath.FromSlash(strings.TrimPrefix(url, "file://"))
	assert.Equal(t, "abc_My_Resume_final_.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, storage.DeleteFile(url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, storage.DeleteFile(url))
}

func TestDiskStorageRefusesForeignPaths(t *testing.T) {
	storage, err := NewStorageService(t.TempDir())
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	assert.Error(t, storage.DeleteFile("file://"+filepath.ToSlash(outside)))
	assert.Error(t, storage.DeleteFile("https://files.example.com/cv.pdf"))

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestResumeDeleteRemovesStoredUpload(t *testing.T) {
	ctx := context.Background()
	storage, err := NewStorageService(t.TempDir())
	require.NoError(t, err)

	resumeRepo := repositories.NewResumeRepository(repositories.NewMemoryStore[models.Resume]())
	analyses := repositories.NewAnalysisRepository(repositories.NewMemoryStore[models.Analysis]())
	analyzer := NewAnalyzerService(analyses, resumeRepo, &fakeGemini{}, NewTextExtractor(), storage, false)
	resumes := NewResumeService(resumeRepo, storage)

	_, err = analyzer.AnalyzeUpload(ctx, textUpload("Data Analyst"))
	require.NoError(t, err)

	list, err := resumes.ListByUser(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)

	path := filepath.FromSlash(strings.TrimPrefix(list[0].FileURL, "file://"))
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, resumes.Delete(ctx, list[0].ID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
