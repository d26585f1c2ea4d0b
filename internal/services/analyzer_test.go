package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

const sampleCompletion = `{"skills":[{"name":"Python","rating":8,"evidence":"Built data pipelines"}],` +
	`"experience":["Data engineering"],"summary":"Solid data background.",` +
	`"gaps":[{"skill":"SQL","whyImportant":"Core for analysts","howToLearn":"Practice queries","priority":1}],` +
	`"suggestions":[{"title":"Quantify","description":"Add metrics","impact":3,"effort":1}],` +
	`"fit":{"score":8,"rationale":"Relevant experience"},` +
	`"tracks":[{"id":"data-track","title":"Data Analyst Path","ctaUrl":"https://example.com/data"}]}`

type analyzerFixture struct {
	svc      AnalyzerService
	gemini   *fakeGemini
	analyses repositories.AnalysisRepository
	resumes  repositories.ResumeRepository
}

func newAnalyzerFixture(gemini *fakeGemini, mockOnMiss bool) analyzerFixture {
	analyses := repositories.NewAnalysisRepository(repositories.NewMemoryStore[models.Analysis]())
	resumes := repositories.NewResumeRepository(repositories.NewMemoryStore[models.Resume]())
	storage, _ := NewStorageService("")
	return analyzerFixture{
		svc:      NewAnalyzerService(analyses, resumes, gemini, NewTextExtractor(), storage, mockOnMiss),
		gemini:   gemini,
		analyses: analyses,
		resumes:  resumes,
	}
}

func textUpload(role string) UploadInput {
	return UploadInput{
		File: models.UploadedFile{
			Data:     []byte("Jane Doe\nBuilt data pipelines in Python"),
			MimeType: "text/plain",
			Filename: "resume.txt",
		},
		Email:      "jane@example.com",
		Name:       "Jane",
		TargetRole: role,
	}
}

func TestAnalyzeUploadWithoutKeyUsesDemoAnalysis(t *testing.T) {
	f := newAnalyzerFixture(&fakeGemini{}, false)
	ctx := context.Background()

	analysis, err := f.svc.AnalyzeUpload(ctx, textUpload("Data Analyst"))
	require.NoError(t, err)

	assert.Zero(t, f.gemini.calls())
	assert.Equal(t, "Data Analyst", analysis.Role)
	assert.Equal(t, 4, analysis.Skills.Len())
	assert.Equal(t, "JavaScript", analysis.Skills.Flat[0].Name)

	require.NotNil(t, analysis.Parse)
	assert.Equal(t, ParserText, analysis.Parse.Parser)
	assert.Equal(t, len([]rune("Jane Doe\nBuilt data pipelines in Python")), analysis.Parse.TextLength)
	assert.Nil(t, analysis.Parse.Error)

	_, err = uuid.Parse(analysis.ID)
	assert.NoError(t, err)

	stored, err := f.svc.GetAnalysis(ctx, analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis.ID, stored.ID)
	assert.Equal(t, "Data Analyst", stored.Role)

	resumes, err := f.resumes.FindByUser(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Len(t, resumes, 1)
	assert.Equal(t, "resume.txt", resumes[0].FileName)
	assert.Equal(t, "memory://"+analysis.ID+"-resume.txt", resumes[0].FileURL)
	assert.Equal(t, analysis.ID, resumes[0].Extra["analysisId"])
}

func TestAnalyzeUploadDefaultsRole(t *testing.T) {
	f := newAnalyzerFixture(&fakeGemini{}, false)

	analysis, err := f.svc.AnalyzeUpload(context.Background(), textUpload("  "))
	require.NoError(t, err)
	assert.Equal(t, "General", analysis.Role)
}

func TestAnalyzeUploadWithGemini(t *testing.T) {
	gemini := &fakeGemini{configured: true, completion: sampleCompletion}
	f := newAnalyzerFixture(gemini, false)

	input := textUpload("Data Analyst")
	input.JobDescription = "Looking for SQL and dashboards"

	analysis, err := f.svc.AnalyzeUpload(context.Background(), input)
	require.NoError(t, err)

	require.Equal(t, 1, gemini.calls())
	assert.True(t, gemini.modes[0], "analysis must request JSON output")
	assert.Contains(t, gemini.prompts[0], `for the role of "Data Analyst"`)
	assert.Contains(t, gemini.prompts[0], "Built data pipelines in Python")
	assert.Contains(t, gemini.prompts[0], "Looking for SQL and dashboards")

	assert.False(t, analysis.Degraded)
	assert.Equal(t, 8, analysis.Fit.Score)
	assert.Equal(t, "Python", analysis.Skills.Flat[0].Name)
	assert.Equal(t, "Data Analyst", analysis.Role)
}

func TestAnalyzeUploadUnparseableCompletionIsDegraded(t *testing.T) {
	gemini := &fakeGemini{configured: true, completion: "I cannot produce JSON today"}
	f := newAnalyzerFixture(gemini, false)

	analysis, err := f.svc.AnalyzeUpload(context.Background(), textUpload("Data Analyst"))
	require.NoError(t, err)

	assert.True(t, analysis.Degraded)
	assert.Equal(t, 7, analysis.Fit.Score)
	assert.Equal(t, "Data Analyst", analysis.Role)
}

func TestAnalyzeUploadEmptyTextSkipsGemini(t *testing.T) {
	gemini := &fakeGemini{configured: true, completion: sampleCompletion}
	f := newAnalyzerFixture(gemini, false)

	analysis, err := f.svc.AnalyzeUpload(context.Background(), UploadInput{
		File: models.UploadedFile{
			Data:     []byte("%PDF-1.4 not really a pdf"),
			MimeType: MimePDF,
			Filename: "broken.pdf",
		},
		Email: "jane@example.com",
	})
	require.NoError(t, err)

	assert.Zero(t, gemini.calls())
	assert.True(t, analysis.Degraded)
	require.NotNil(t, analysis.Parse.Error)
	assert.Equal(t, ParserPDF, analysis.Parse.Parser)
}

func TestAnalyzeUploadUpstreamFailure(t *testing.T) {
	upstream := &UpstreamError{Op: "generate content", Err: errors.New("quota exceeded")}
	f := newAnalyzerFixture(&fakeGemini{configured: true, err: upstream}, false)

	_, err := f.svc.AnalyzeUpload(context.Background(), textUpload("Data Analyst"))

	var target *UpstreamError
	assert.ErrorAs(t, err, &target)
}

func TestGetAnalysis(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		f := newAnalyzerFixture(&fakeGemini{}, false)
		_, err := f.svc.GetAnalysis(context.Background(), "not-a-uuid")

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, 400, validation.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newAnalyzerFixture(&fakeGemini{}, false)
		_, err := f.svc.GetAnalysis(context.Background(), uuid.NewString())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("unknown id with mock on miss", func(t *testing.T) {
		f := newAnalyzerFixture(&fakeGemini{}, true)
		id := uuid.NewString()

		analysis, err := f.svc.GetAnalysis(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, analysis.ID)
		assert.Equal(t, "demo", analysis.Parse.Parser)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		f := newAnalyzerFixture(&fakeGemini{}, false)
		_, err := f.svc.Generate(context.Background(), models.PromptRequest{Text: "resume"})
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("missing text", func(t *testing.T) {
		f := newAnalyzerFixture(&fakeGemini{configured: true}, false)
		_, err := f.svc.Generate(context.Background(), models.PromptRequest{Text: "  "})

		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("analysis mode", func(t *testing.T) {
		gemini := &fakeGemini{configured: true, completion: "```json\n" + sampleCompletion + "\n```"}
		f := newAnalyzerFixture(gemini, false)

		resp, err := f.svc.Generate(context.Background(), models.PromptRequest{Text: "resume text", TargetRole: "Backend Engineer"})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.True(t, gemini.modes[0])
		analysis, ok := resp.Result.(*models.Analysis)
		require.True(t, ok)
		assert.Equal(t, 8, analysis.Fit.Score)
		assert.Equal(t, gemini.completion, resp.RawGeminiResponse)
	})

	t.Run("chat mode", func(t *testing.T) {
		gemini := &fakeGemini{configured: true, completion: "Step 1: classify\nHello there"}
		f := newAnalyzerFixture(gemini, false)

		resp, err := f.svc.Generate(context.Background(), models.PromptRequest{Text: "hi", IsChat: true})
		require.NoError(t, err)

		assert.False(t, gemini.modes[0])
		assert.Equal(t, models.ChatReply{Description: "Hello there", Type: "chat"}, resp.Result)
	})
}
