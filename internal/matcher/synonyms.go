package matcher

import "strings"

// synonymGroups lists keyword variants that count as verbatim matches for
// each other. Adapted from the skill-name normalization table in the resume
// customization pipeline; all entries lowercase.
var synonymGroups = [][]string{
	{"go", "golang"},
	{"javascript", "js"},
	{"typescript", "ts"},
	{"kubernetes", "k8s"},
	{"postgresql", "postgres"},
	{"amazon web services", "aws"},
	{"google cloud platform", "gcp", "google cloud"},
	{"machine learning", "ml"},
	{"artificial intelligence", "ai"},
	{"continuous integration", "ci"},
	{"continuous deployment", "cd"},
	{"ci/cd", "cicd", "ci cd"},
	{"react", "react.js", "reactjs"},
	{"vue", "vue.js", "vuejs"},
	{"node.js", "nodejs", "node"},
	{"c sharp", "c#", "csharp"},
	{"objective-c", "objective c", "objc"},
	{"natural language processing", "nlp"},
	{"user experience", "ux"},
	{"user interface", "ui"},
	{"infrastructure as code", "iac"},
	{"test-driven development", "tdd", "test driven development"},
	{"search engine optimization", "seo"},
	{"customer relationship management", "crm"},
	{"key performance indicator", "kpi", "key performance indicators", "kpis"},
	{"structured query language", "sql"},
	{"representational state transfer", "rest", "restful"},
}

// synonymIndex maps each lowercase variant to its full group.
var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() map[string][]string {
	index := make(map[string][]string)
	for _, group := range synonymGroups {
		for _, variant := range group {
			index[variant] = group
		}
	}
	return index
}

// variants returns the lowercase phrase plus every known synonym and
// abbreviation of it. The phrase itself is always first.
func variants(phrase string) []string {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	group, ok := synonymIndex[normalized]
	if !ok {
		return []string{normalized}
	}

	out := []string{normalized}
	for _, v := range group {
		if v != normalized {
			out = append(out, v)
		}
	}
	return out
}
