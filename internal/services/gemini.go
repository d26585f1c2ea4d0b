package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/config"
)

const defaultGeminiModel = "gemini-2.0-flash"

type GeminiService interface {
	// Configured reports whether an API key is present.
	Configured() bool
	// GenerateText sends prompt as the only content of a single request.
	// jsonMode asks the model for an application/json completion.
	GenerateText(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService builds the client only when an API key is configured, so the
// server can start without one and report ErrConfiguration per request.
func NewGeminiService(cfg config.GeminiConfig) (GeminiService, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	if cfg.APIKey == "" {
		return &geminiService{modelName: modelName}, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

// Configured implements GeminiService.
func (g *geminiService) Configured() bool {
	return g.client != nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if g.client == nil {
		return "", ErrConfiguration
	}

	var genCfg *genai.GenerateContentConfig
	if jsonMode {
		genCfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genCfg)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", &UpstreamError{Op: "generate content", Err: err}
	}

	if resp == nil {
		log.Println("❌ Gemini API returned nil response")
		return "", &UpstreamError{Op: "generate content", Err: ErrEmptyResponse}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		log.Println("❌ No text content in Gemini response")
		return "", &UpstreamError{Op: "generate content", Err: ErrEmptyResponse}
	}

	log.Printf("📊 Gemini response received: %d characters", len(text))
	return text, nil
}
