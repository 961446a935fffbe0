package scoring

import (
	"testing"

	"github.com/jonathan/resume-scorer/internal/matcher"
	"github.com/jonathan/resume-scorer/internal/thresholds"
	"github.com/jonathan/resume-scorer/internal/types"
)

// newTestInput assembles a scorer input over the embedded threshold table
// with exact-only matching, the way the orchestrator would.
func newTestInput(t *testing.T, doc *types.NormalizedDocument, role string, level types.Level) *Input {
	t.Helper()
	sctx := types.ScoringContext{Role: role, Level: level}
	return &Input{
		Doc:     doc,
		Context: sctx,
		Table:   thresholds.Default(),
		Match:   matcher.NewExact().NewSession(doc.FullText()),
		Profile: ResolveProfile(sctx),
	}
}

// strongBackendDoc is a well-formed mid-level backend resume: full required
// keyword coverage, quantified bullets, clean structure.
func strongBackendDoc() *types.NormalizedDocument {
	return &types.NormalizedDocument{
		Contact: types.Contact{
			Name:        "Jordan Smith",
			Email:       "jordan@example.com",
			Phone:       "+1 555 0100",
			ProfileLink: "https://linkedin.com/in/jordansmith",
		},
		Summary: "Backend engineer focused on reliable, well-tested services.",
		Experience: []types.ExperienceEntry{
			{
				Company:   "Acme Corp",
				Title:     "Software Engineer",
				StartDate: "2022-03",
				EndDate:   "present",
				Bullets: []string{
					"Built a payments API handling 2 million requests per day with extensive testing",
					"Reduced database query latency by 45% through targeted SQL index tuning",
					"Led migration of the monolith into microservices across a team of 6 engineers",
					"Delivered automated integration testing that cut release defects by 30%",
				},
			},
			{
				Company:   "Initech",
				Title:     "Junior Software Engineer",
				StartDate: "2020-01",
				EndDate:   "2022-02",
				Bullets: []string{
					"Developed REST API endpoints for the customer billing database in Go",
					"Automated deployment pipelines, reducing release time from 3 hours to 20 minutes",
					"Improved SQL report generation speed 4x for the analytics team",
				},
			},
		},
		Education: []types.EducationEntry{
			{Institution: "State University", Degree: "BS Computer Science", GraduationDate: "2019"},
		},
		Skills: []string{"Go", "SQL", "PostgreSQL", "REST", "Git", "Docker", "Linux"},
		Layout: types.LayoutMetadata{
			PageCount:    2,
			WordCount:    600,
			SourceFormat: types.FormatPDF,
			SectionWordCounts: map[string]int{
				"summary":    40,
				"experience": 400,
				"education":  60,
				"skills":     100,
			},
		},
	}
}

// weakDoc is a sparse resume with none of the backend role's keywords, weak
// verbs, and no quantification.
func weakDoc() *types.NormalizedDocument {
	return &types.NormalizedDocument{
		Contact: types.Contact{Name: "Alex Doe"},
		Experience: []types.ExperienceEntry{
			{
				Company:   "SomeCo",
				Title:     "Staff Member",
				StartDate: "2021-01",
				EndDate:   "2021-06",
				Bullets: []string{
					"worked on various things",
					"helped with projects",
					"responsible for tasks",
				},
			},
		},
		Layout: types.LayoutMetadata{PageCount: 1, WordCount: 120, SourceFormat: types.FormatDOCX},
	}
}

// findResult locates one parameter's result in a scored set.
func findResult(t *testing.T, results []types.ParameterResult, code string) types.ParameterResult {
	t.Helper()
	for _, r := range results {
		if r.Code == code {
			return r
		}
	}
	t.Fatalf("no result for parameter %s", code)
	return types.ParameterResult{}
}
