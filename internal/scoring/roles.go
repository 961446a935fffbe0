package scoring

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// maxJDKeywords bounds how many job-description terms are folded into the
// required set, so a sprawling posting cannot drown the role baseline.
const maxJDKeywords = 10

// RoleProfile holds the keyword expectations for a target role. Required
// keywords are hard requirements weighted higher than preferred ones;
// core skills are matched against the skills section specifically.
type RoleProfile struct {
	Name              string
	RequiredKeywords  []string
	PreferredKeywords []string
	CoreSkills        []string
}

// roleProfiles maps role-name fragments to built-in profiles. Lookup is a
// case-insensitive substring match against the requested role.
var roleProfiles = map[string]RoleProfile{
	"backend": {
		Name:              "backend engineer",
		RequiredKeywords:  []string{"api", "database", "sql", "microservices", "testing"},
		PreferredKeywords: []string{"docker", "kubernetes", "aws", "ci/cd", "caching", "message queue"},
		CoreSkills:        []string{"sql", "rest", "git", "docker", "linux"},
	},
	"frontend": {
		Name:              "frontend engineer",
		RequiredKeywords:  []string{"javascript", "css", "react", "testing", "accessibility"},
		PreferredKeywords: []string{"typescript", "webpack", "performance", "responsive design", "ci/cd"},
		CoreSkills:        []string{"javascript", "html", "css", "git", "react"},
	},
	"data scientist": {
		Name:              "data scientist",
		RequiredKeywords:  []string{"python", "machine learning", "statistics", "sql", "data analysis"},
		PreferredKeywords: []string{"tensorflow", "pytorch", "pandas", "visualization", "a/b testing", "nlp"},
		CoreSkills:        []string{"python", "sql", "pandas", "statistics", "machine learning"},
	},
	"data engineer": {
		Name:              "data engineer",
		RequiredKeywords:  []string{"sql", "etl", "python", "data pipeline", "data warehouse"},
		PreferredKeywords: []string{"spark", "airflow", "kafka", "aws", "snowflake", "dbt"},
		CoreSkills:        []string{"sql", "python", "spark", "airflow", "etl"},
	},
	"devops": {
		Name:              "devops engineer",
		RequiredKeywords:  []string{"ci/cd", "kubernetes", "infrastructure as code", "monitoring", "automation"},
		PreferredKeywords: []string{"terraform", "aws", "docker", "ansible", "prometheus", "linux"},
		CoreSkills:        []string{"docker", "kubernetes", "terraform", "linux", "bash"},
	},
	"product manager": {
		Name:              "product manager",
		RequiredKeywords:  []string{"roadmap", "stakeholder", "user research", "metrics", "prioritization"},
		PreferredKeywords: []string{"a/b testing", "agile", "go-to-market", "analytics", "okr"},
		CoreSkills:        []string{"agile", "analytics", "sql", "jira", "roadmap"},
	},
	"engineering manager": {
		Name:              "engineering manager",
		RequiredKeywords:  []string{"leadership", "mentoring", "hiring", "roadmap", "delivery"},
		PreferredKeywords: []string{"agile", "stakeholder", "performance review", "architecture", "okr"},
		CoreSkills:        []string{"agile", "architecture", "mentoring", "planning", "hiring"},
	},
}

// defaultProfile backs roles with no built-in profile.
var defaultProfile = RoleProfile{
	Name:              "software engineer",
	RequiredKeywords:  []string{"software development", "testing", "debugging", "api", "agile"},
	PreferredKeywords: []string{"cloud", "docker", "ci/cd", "code review", "microservices"},
	CoreSkills:        []string{"git", "sql", "linux", "docker", "testing"},
}

// jdVocabulary is the flat term list scanned when extracting keywords from a
// job description. Word-boundary matched, case-insensitive.
var jdVocabulary = []string{
	"python", "java", "go", "golang", "javascript", "typescript", "rust", "ruby",
	"c++", "c#", "scala", "kotlin", "swift", "php", "sql", "nosql", "html", "css",
	"react", "angular", "vue", "node.js", "django", "flask", "spring", "rails",
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "git", "ci/cd",
	"aws", "azure", "gcp", "linux", "bash", "rest", "graphql", "grpc",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
	"spark", "airflow", "hadoop", "snowflake", "dbt", "etl",
	"machine learning", "deep learning", "nlp", "computer vision", "statistics",
	"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn",
	"microservices", "distributed systems", "api", "testing", "debugging",
	"agile", "scrum", "jira", "leadership", "mentoring", "stakeholder",
	"roadmap", "analytics", "a/b testing", "monitoring", "observability",
	"security", "oauth", "encryption", "performance", "scalability", "caching",
}

// ResolveProfile selects the role profile for a scoring context and, when a
// job description is provided, augments the required set with vocabulary
// terms found in it. Terms already present (or synonymous) are not repeated.
func ResolveProfile(sctx types.ScoringContext) RoleProfile {
	profile := lookupProfile(sctx.Role)

	if sctx.JobDescription == "" {
		return profile
	}

	extracted := ExtractKeywords(sctx.JobDescription)
	existing := make(map[string]bool)
	for _, kw := range profile.RequiredKeywords {
		existing[strings.ToLower(kw)] = true
	}
	for _, kw := range profile.PreferredKeywords {
		existing[strings.ToLower(kw)] = true
	}

	merged := profile
	merged.RequiredKeywords = append([]string(nil), profile.RequiredKeywords...)
	added := 0
	for _, kw := range extracted {
		if added >= maxJDKeywords {
			break
		}
		if existing[kw] {
			continue
		}
		merged.RequiredKeywords = append(merged.RequiredKeywords, kw)
		existing[kw] = true
		added++
	}
	return merged
}

// profileFragments is the deterministic lookup order; first match wins.
var profileFragments = []string{
	"engineering manager",
	"product manager",
	"data scientist",
	"data engineer",
	"backend",
	"frontend",
	"devops",
}

func lookupProfile(role string) RoleProfile {
	roleLower := strings.ToLower(strings.TrimSpace(role))
	for _, fragment := range profileFragments {
		if strings.Contains(roleLower, fragment) {
			return roleProfiles[fragment]
		}
	}
	return defaultProfile
}

// ExtractKeywords scans text for known vocabulary terms, preserving
// vocabulary order. Used to derive required keywords from a job description.
func ExtractKeywords(text string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, term := range jdVocabulary {
		if containsTerm(textLower, term) {
			found = append(found, term)
		}
	}
	return found
}

// containsTerm is a word-boundary containment check over lowercase text.
func containsTerm(textLower, term string) bool {
	from := 0
	for {
		idx := strings.Index(textLower[from:], term)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(term)
		beforeOK := start == 0 || !isWordChar(textLower[start-1])
		afterOK := end >= len(textLower) || !isWordChar(textLower[end])
		if beforeOK && afterOK {
			return true
		}
		from = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
