package services

import (
	"time"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// MockAnalysis is the demo analysis returned when no Gemini key is configured.
// Only role and the parse outcome come from the request.
func MockAnalysis(role string) *models.Analysis {
	if role == "" {
		role = "General"
	}

	return &models.Analysis{
		Role: role,
		Skills: models.FlatSkills(
			models.Skill{Name: "JavaScript", Rating: 8, Evidence: "Listed in skills section"},
			models.Skill{Name: "React", Rating: 7, Evidence: "Mentioned in experience"},
			models.Skill{Name: "Node.js", Rating: 6, Evidence: "Backend development experience"},
			models.Skill{Name: "Python", Rating: 5, Evidence: "Basic knowledge mentioned"},
		),
		Experience: []string{"3+ years software development", "Full-stack web applications"},
		Summary:    "Experienced software developer with strong frontend skills and growing backend expertise. Shows good understanding of modern web technologies.",
		Gaps: []models.Gap{
			{
				Skill:        "Cloud Computing (AWS/Azure)",
				WhyImportant: "Essential for modern software deployment and scalability",
				HowToLearn:   "Take AWS certification courses, build projects on cloud platforms",
				Priority:     2,
			},
			{
				Skill:        "Testing Frameworks",
				WhyImportant: "Ensures code quality and reduces bugs in production",
				HowToLearn:   "Learn Jest, Cypress, or similar testing tools",
				Priority:     2,
			},
			{
				Skill:        "System Design",
				WhyImportant: "Required for senior developer roles and technical interviews",
				HowToLearn:   "Study distributed systems, practice system design interviews",
				Priority:     3,
			},
		},
		Suggestions: []models.Suggestion{
			{
				Title:       "Add Quantified Achievements",
				Description: "Include specific metrics like 'Improved performance by 40%' or 'Reduced load time by 2 seconds'",
				Impact:      3,
				Effort:      1,
			},
			{
				Title:       "Include Relevant Projects",
				Description: "Add links to GitHub repositories or live project demos",
				Impact:      3,
				Effort:      2,
			},
			{
				Title:       "Highlight Leadership Experience",
				Description: "Mention any mentoring, team lead, or project management experience",
				Impact:      2,
				Effort:      2,
			},
		},
		Fit: models.Fit{
			Score:     7,
			Rationale: "Strong technical foundation with room for growth in cloud and testing areas",
		},
		Tracks: []models.Track{
			{ID: "senior-developer-track", Title: "Senior Developer Path", CtaURL: "https://calendly.com/your-mentor/senior-dev"},
			{ID: "full-stack-track", Title: "Full-Stack Mastery", CtaURL: "https://calendly.com/your-mentor/fullstack"},
		},
	}
}

// MockAnalysisForID fabricates a stored-looking record for an unknown id.
// Only used when the server runs with ANALYSIS_MOCK_ON_MISS.
func MockAnalysisForID(id string) *models.Analysis {
	pages := 1
	analysis := MockAnalysis("Software Developer")
	analysis.ID = id
	analysis.CreatedAt = time.Now()
	analysis.Parse = &models.ParseInfo{
		Parser:     "demo",
		Pages:      &pages,
		TextLength: 500,
		File:       models.FileInfo{Name: "resume.pdf", Mime: MimePDF, Ext: "pdf"},
	}
	return analysis
}
