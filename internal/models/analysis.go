package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Analysis struct {
	ID          string       `json:"id"`
	Role        string       `json:"role"`
	Skills      SkillSet     `json:"skills"`
	Experience  []string     `json:"experience"`
	Summary     string       `json:"summary"`
	Gaps        []Gap        `json:"gaps"`
	Suggestions []Suggestion `json:"suggestions"`
	Fit         Fit          `json:"fit"`
	Tracks      []Track      `json:"tracks"`
	Parse       *ParseInfo   `json:"parse,omitempty"`
	// Degraded is set when the completion could not be parsed and defaults were substituted.
	Degraded  bool      `json:"degraded"`
	CreatedAt time.Time `json:"createdAt"`
}

type Skill struct {
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Evidence string `json:"evidence"`
}

type Gap struct {
	Skill        string `json:"skill"`
	WhyImportant string `json:"whyImportant"`
	HowToLearn   string `json:"howToLearn"`
	Priority     int    `json:"priority"`
}

type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      int    `json:"impact"`
	Effort      int    `json:"effort"`
}

type Fit struct {
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	CtaURL string `json:"ctaUrl"`
}

// looseInt decodes model-produced numbers: fractions are rounded, numeric
// strings are parsed, null and non-numeric strings leave zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return fmt.Errorf("number expected, got %s", data)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	f = math.Round(f)
	if f > math.MaxInt32 {
		f = math.MaxInt32
	} else if f < math.MinInt32 {
		f = math.MinInt32
	}
	*n = looseInt(f)
	return nil
}

func (s *Skill) UnmarshalJSON(data []byte) error {
	type alias Skill
	aux := struct {
		*alias
		Rating looseInt `json:"rating"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Rating = int(aux.Rating)
	return nil
}

func (g *Gap) UnmarshalJSON(data []byte) error {
	type alias Gap
	aux := struct {
		*alias
		Priority looseInt `json:"priority"`
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.Priority = int(aux.Priority)
	return nil
}

func (s *Suggestion) UnmarshalJSON(data []byte) error {
	type alias Suggestion
	aux := struct {
		*alias
		Impact looseInt `json:"impact"`
		Effort looseInt `json:"effort"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Impact = int(aux.Impact)
	s.Effort = int(aux.Effort)
	return nil
}

func (f *Fit) UnmarshalJSON(data []byte) error {
	type alias Fit
	aux := struct {
		*alias
		Score looseInt `json:"score"`
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Score = int(aux.Score)
	return nil
}

type SkillSetKind string

const (
	SkillSetFlat        SkillSetKind = "flat"
	SkillSetCategorized SkillSetKind = "categorized"
)

// SkillSet holds either a flat list of rated skills or hard/soft skill names.
// The shape is decided once when decoding and kept when encoding.
type SkillSet struct {
	Kind SkillSetKind
	Flat []Skill
	Hard []string
	Soft []string
}

func FlatSkills(skills ...Skill) SkillSet {
	if skills == nil {
		skills = []Skill{}
	}
	return SkillSet{Kind: SkillSetFlat, Flat: skills}
}

func CategorizedSkills(hard, soft []string) SkillSet {
	if hard == nil {
		hard = []string{}
	}
	if soft == nil {
		soft = []string{}
	}
	return SkillSet{Kind: SkillSetCategorized, Hard: hard, Soft: soft}
}

// Len returns the number of skills regardless of shape.
func (s SkillSet) Len() int {
	if s.Kind == SkillSetCategorized {
		return len(s.Hard) + len(s.Soft)
	}
	return len(s.Flat)
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	if s.Kind == SkillSetCategorized {
		return json.Marshal(struct {
			Hard []string `json:"hard"`
			Soft []string `json:"soft"`
		}{Hard: nonNilStrings(s.Hard), Soft: nonNilStrings(s.Soft)})
	}

	flat := s.Flat
	if flat == nil {
		flat = []Skill{}
	}
	return json.Marshal(flat)
}

func (s *SkillSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = FlatSkills()
		return nil
	}

	switch trimmed[0] {
	case '[':
		var flat []Skill
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return fmt.Errorf("invalid skills list: %w", err)
		}
		*s = FlatSkills(flat...)
		return nil
	case '{':
		var cat struct {
			Hard []string `json:"hard"`
			Soft []string `json:"soft"`
		}
		if err := json.Unmarshal(trimmed, &cat); err != nil {
			return fmt.Errorf("invalid categorized skills: %w", err)
		}
		*s = CategorizedSkills(cat.Hard, cat.Soft)
		return nil
	default:
		return fmt.Errorf("unsupported skills shape: %s", string(trimmed[:1]))
	}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
