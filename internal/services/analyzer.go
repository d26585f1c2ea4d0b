package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type UploadInput struct {
	File           models.UploadedFile
	Email          string
	Name           string
	TargetRole     string
	JobDescription string
}

type AnalyzerService interface {
	AnalyzeUpload(ctx context.Context, input UploadInput) (*models.Analysis, error)
	Generate(ctx context.Context, req models.PromptRequest) (*models.GenerateResponse, error)
	GetAnalysis(ctx context.Context, id string) (*models.Analysis, error)
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	resumeRepo    repositories.ResumeRepository
	geminiService GeminiService
	extractor     TextExtractor
	storage       StorageService
	promptBuilder *PromptBuilder
	mockOnMiss    bool
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	resumeRepo repositories.ResumeRepository,
	geminiService GeminiService,
	extractor TextExtractor,
	storage StorageService,
	mockOnMiss bool,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		resumeRepo:    resumeRepo,
		geminiService: geminiService,
		extractor:     extractor,
		storage:       storage,
		promptBuilder: NewPromptBuilder(),
		mockOnMiss:    mockOnMiss,
	}
}

// AnalyzeUpload extracts the resume text, analyzes it and stores the result under a new id.
// Without a Gemini key the demo analysis is used; the parse outcome is always real.
func (a *analyzerService) AnalyzeUpload(ctx context.Context, input UploadInput) (*models.Analysis, error) {
	parse := a.extractor.Extract(input.File)
	log.Printf("📄 Extracted %d characters from %s (mime: %s, parser: %s)",
		parse.TextLength, input.File.Filename, input.File.MimeType, parse.Parser)

	role := strings.TrimSpace(input.TargetRole)

	var analysis *models.Analysis
	switch {
	case !a.geminiService.Configured():
		log.Println("⚠️  Gemini not configured, returning demo analysis")
		analysis = MockAnalysis(role)
	case strings.TrimSpace(parse.Text) == "":
		log.Println("⚠️  No text extracted, skipping Gemini call")
		analysis = DefaultAnalysis()
	default:
		prompt := a.promptBuilder.BuildAnalysisPrompt(parse.Text, role, input.JobDescription)
		log.Printf("📝 Analysis prompt length: %d characters", len(prompt))

		completion, err := a.geminiService.GenerateText(ctx, prompt, true)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze resume: %w", err)
		}
		analysis, _ = NormalizeAnalysis(completion)
	}

	if role == "" {
		role = "General"
	}
	analysis.ID = uuid.NewString()
	analysis.Role = role
	analysis.Parse = &parse
	analysis.CreatedAt = time.Now()

	if err := a.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	fileURL, err := a.storage.SaveFile(input.File, analysis.ID)
	if err != nil {
		log.Printf("⚠️  Failed to store uploaded file: %v", err)
		fileURL = fmt.Sprintf("memory://%s-%s", analysis.ID, input.File.Filename)
	}

	resume := &models.Resume{
		ID:         uuid.NewString(),
		UserID:     input.Email,
		FileName:   input.File.Filename,
		FileURL:    fileURL,
		FileType:   input.File.MimeType,
		Email:      input.Email,
		Name:       input.Name,
		TargetRole: input.TargetRole,
		Extra:      map[string]any{"analysisId": analysis.ID},
		CreatedAt:  analysis.CreatedAt,
	}
	if err := a.resumeRepo.Create(ctx, resume); err != nil {
		log.Printf("⚠️  Failed to save resume metadata: %v", err)
	}

	log.Printf("✅ Analysis %s stored (degraded: %t)", analysis.ID, analysis.Degraded)
	return analysis, nil
}

// Generate runs one prompt through Gemini and normalizes the completion for its mode.
func (a *analyzerService) Generate(ctx context.Context, req models.PromptRequest) (*models.GenerateResponse, error) {
	if !a.geminiService.Configured() {
		return nil, ErrConfiguration
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, NewValidationError("Text content is required")
	}

	prompt := a.promptBuilder.Build(req)
	completion, err := a.geminiService.GenerateText(ctx, prompt, !req.IsChat)
	if err != nil {
		return nil, err
	}

	var result any
	if req.IsChat {
		result = models.ChatReply{
			Description: SanitizeChat(completion),
			Type:        "chat",
		}
	} else {
		analysis, _ := NormalizeAnalysis(completion)
		result = analysis
	}

	return &models.GenerateResponse{
		Success:           true,
		Result:            result,
		RawGeminiResponse: completion,
	}, nil
}

// GetAnalysis looks up a stored analysis. Unknown ids are ErrNotFound unless mockOnMiss is set.
func (a *analyzerService) GetAnalysis(ctx context.Context, id string) (*models.Analysis, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, NewValidationError("Invalid analysis ID")
	}

	analysis, err := a.analysisRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) && a.mockOnMiss {
			log.Printf("⚠️  Analysis %s not found, returning demo analysis", id)
			return MockAnalysisForID(id), nil
		}
		return nil, err
	}

	return analysis, nil
}
