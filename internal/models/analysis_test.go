package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillSetDecodeShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		kind     SkillSetKind
		len      int
		wantJSON string
	}{
		{
			name:     "flat list",
			input:    `[{"name":"Go","rating":9,"evidence":"5 years"}]`,
			kind:     SkillSetFlat,
			len:      1,
			wantJSON: `[{"name":"Go","rating":9,"evidence":"5 years"}]`,
		},
		{
			name:     "categorized",
			input:    `{"hard":["Go","SQL"],"soft":["Mentoring"]}`,
			kind:     SkillSetCategorized,
			len:      3,
			wantJSON: `{"hard":["Go","SQL"],"soft":["Mentoring"]}`,
		},
		{
			name:     "categorized missing soft",
			input:    `{"hard":["Go"]}`,
			kind:     SkillSetCategorized,
			len:      1,
			wantJSON: `{"hard":["Go"],"soft":[]}`,
		},
		{
			name:     "null",
			input:    `null`,
			kind:     SkillSetFlat,
			len:      0,
			wantJSON: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var skills SkillSet
			require.NoError(t, json.Unmarshal([]byte(tt.input), &skills))
			assert.Equal(t, tt.kind, skills.Kind)
			assert.Equal(t, tt.len, skills.Len())

			out, err := json.Marshal(skills)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(out))
		})
	}
}

func TestSkillSetRejectsScalar(t *testing.T) {
	t.Parallel()

	var skills SkillSet
	err := json.Unmarshal([]byte(`"Go, SQL"`), &skills)
	assert.Error(t, err)
}

func TestAnalysisKeepsSkillShapeInsideDocument(t *testing.T) {
	t.Parallel()

	doc := `{"skills":{"hard":["Go"],"soft":["Communication"]},"experience":[],"summary":"s",` +
		`"gaps":[],"suggestions":[],"fit":{"score":8,"rationale":"r"},"tracks":[]}`

	var analysis Analysis
	require.NoError(t, json.Unmarshal([]byte(doc), &analysis))
	assert.Equal(t, SkillSetCategorized, analysis.Skills.Kind)
	assert.Equal(t, []string{"Go"}, analysis.Skills.Hard)
	assert.Equal(t, 8, analysis.Fit.Score)

	out, err := json.Marshal(analysis)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	skills, ok := generic["skills"].(map[string]any)
	require.True(t, ok, "skills should stay an object")
	assert.Contains(t, skills, "soft")
}

func TestZeroSkillSetEncodesAsEmptyList(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(SkillSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestAnalysisNumbersDecodeLeniently(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "integer", input: `8`, want: 8},
		{name: "fraction rounds up", input: `8.5`, want: 9},
		{name: "fraction rounds down", input: `6.2`, want: 6},
		{name: "numeric string", input: `"8"`, want: 8},
		{name: "padded fractional string", input: `" 7.6 "`, want: 8},
		{name: "non-numeric string", input: `"high"`, want: 0},
		{name: "null", input: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var fit Fit
			require.NoError(t, json.Unmarshal([]byte(`{"score":`+tt.input+`,"rationale":"r"}`), &fit))
			assert.Equal(t, tt.want, fit.Score)
			assert.Equal(t, "r", fit.Rationale)
		})
	}
}

func TestAnalysisNestedNumbersDecodeLeniently(t *testing.T) {
	t.Parallel()

	input := `{"skills":[{"name":"Go","rating":8.5,"evidence":"e"}],` +
		`"gaps":[{"skill":"SQL","whyImportant":"w","howToLearn":"h","priority":"2"}],` +
		`"suggestions":[{"title":"t","description":"d","impact":2.4,"effort":"1"}],` +
		`"fit":{"score":"8","rationale":"r"}}`

	var a Analysis
	require.NoError(t, json.Unmarshal([]byte(input), &a))

	require.Len(t, a.Skills.Flat, 1)
	assert.Equal(t, Skill{Name: "Go", Rating: 9, Evidence: "e"}, a.Skills.Flat[0])
	assert.Equal(t, []Gap{{Skill: "SQL", WhyImportant: "w", HowToLearn: "h", Priority: 2}}, a.Gaps)
	assert.Equal(t, []Suggestion{{Title: "t", Description: "d", Impact: 2, Effort: 1}}, a.Suggestions)
	assert.Equal(t, Fit{Score: 8, Rationale: "r"}, a.Fit)
}

func TestAnalysisNumberRejectsWrongType(t *testing.T) {
	t.Parallel()

	var fit Fit
	assert.Error(t, json.Unmarshal([]byte(`{"score":true}`), &fit))
	assert.Error(t, json.Unmarshal([]byte(`{"score":[8]}`), &fit))
}
