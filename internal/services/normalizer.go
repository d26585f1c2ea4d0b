package services

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	minFitScore     = 1
	maxFitScore     = 10
	defaultFitScore = 7
)

// Lines matching any of these are model reasoning that must not reach the user.
var metaLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*\[?step\b.*\]?`),
	regexp.MustCompile(`(?i)^\s*classification\s*:`),
	regexp.MustCompile(`(?i)^\s*classify\s*:`),
	regexp.MustCompile(`(?i)^\s*reason(?:ing)?\s*:`),
	regexp.MustCompile(`(?i)^\s*thoughts?\s*:`),
	regexp.MustCompile(`(?i)^\s*internal\s*:`),
	regexp.MustCompile(`(?i)^\s*analysis\s*:`),
	regexp.MustCompile(`(?i)^\s*meta\s*:`),
	regexp.MustCompile(`(?i)^\s*plan\s*:`),
	regexp.MustCompile(`(?i)^\s*based on the conversation history.*$`),
	regexp.MustCompile(`(?i)^\s*from the conversation history.*$`),
	regexp.MustCompile(`(?i)^\s*using the conversation history.*$`),
	regexp.MustCompile(`(?i)^\s*the conversation history shows.*$`),
}

// NormalizeAnalysis parses an analysis completion. It tries the whole text, then the
// first top-level JSON object inside it. When both fail it returns DefaultAnalysis
// with Degraded set and ok=false.
func NormalizeAnalysis(completion string) (analysis *models.Analysis, ok bool) {
	if strings.HasPrefix(strings.TrimSpace(completion), "{") {
		var parsed models.Analysis
		if err := json.Unmarshal([]byte(completion), &parsed); err == nil {
			return fillEmpty(&parsed), true
		}
	}

	if candidate, found := extractJSONObject(completion); found {
		var retried models.Analysis
		if err := json.Unmarshal([]byte(candidate), &retried); err == nil {
			return fillEmpty(&retried), true
		}
	}

	log.Printf("⚠️  Failed to parse analysis completion (%d characters), using defaults", len(completion))
	return DefaultAnalysis(), false
}

// DefaultAnalysis is substituted for completions that cannot be parsed.
func DefaultAnalysis() *models.Analysis {
	return &models.Analysis{
		Skills:      models.FlatSkills(),
		Experience:  []string{},
		Summary:     "",
		Gaps:        []models.Gap{},
		Suggestions: []models.Suggestion{},
		Fit:         models.Fit{Score: defaultFitScore, Rationale: ""},
		Tracks: []models.Track{
			{ID: "career-dev", Title: "Career Development Path", CtaURL: "https://calendly.com/your-mentor"},
		},
		Degraded: true,
	}
}

// SanitizeChat removes whole lines that leak reasoning or meta commentary,
// drops leading blank lines and trims the result. Kept lines are unchanged and in order.
func SanitizeChat(completion string) string {
	if completion == "" {
		return completion
	}

	lines := strings.Split(completion, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if isMetaLine(strings.TrimSpace(line)) {
			continue
		}
		filtered = append(filtered, line)
	}

	for len(filtered) > 0 && strings.TrimSpace(filtered[0]) == "" {
		filtered = filtered[1:]
	}

	return strings.TrimSpace(strings.Join(filtered, "\n"))
}

func isMetaLine(line string) bool {
	for _, rx := range metaLinePatterns {
		if rx.MatchString(line) {
			return true
		}
	}
	return false
}

// extractJSONObject returns the first balanced {...} span, ignoring braces inside strings.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

func fillEmpty(a *models.Analysis) *models.Analysis {
	if a.Skills.Kind == "" {
		a.Skills = models.FlatSkills(a.Skills.Flat...)
	}
	if a.Experience == nil {
		a.Experience = []string{}
	}
	if a.Gaps == nil {
		a.Gaps = []models.Gap{}
	}
	if a.Suggestions == nil {
		a.Suggestions = []models.Suggestion{}
	}
	if a.Tracks == nil {
		a.Tracks = []models.Track{}
	}
	a.Fit.Score = clampFitScore(a.Fit.Score)
	return a
}

// clampFitScore keeps the score in 1..10; zero means the model left it out.
func clampFitScore(score int) int {
	switch {
	case score == 0:
		return defaultFitScore
	case score < minFitScore:
		return minFitScore
	case score > maxFitScore:
		return maxFitScore
	}
	return score
}
