package scoring

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-scorer/internal/types"
)

// commonMisspellings are frequent resume misspellings checked word-by-word.
var commonMisspellings = map[string]string{
	"recieve":       "receive",
	"recieved":      "received",
	"seperate":      "separate",
	"definately":    "definitely",
	"occured":       "occurred",
	"managment":     "management",
	"enviroment":    "environment",
	"enviroments":   "environments",
	"sucessful":     "successful",
	"sucessfully":   "successfully",
	"acheive":       "achieve",
	"acheived":      "achieved",
	"responsibilty": "responsibility",
	"experiance":    "experience",
	"proffesional":  "professional",
	"maintainance":  "maintenance",
	"implimented":   "implemented",
}

var (
	doubleSpacePattern = regexp.MustCompile(`\S {2,}\S`)
	firstPersonPattern = regexp.MustCompile(`(?i)\b(i|my|me|myself)\b`)
)

// doubledWord returns the first immediately repeated word in text, or "".
func doubledWord(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	for i := 1; i < len(fields); i++ {
		word := strings.Trim(fields[i], ".,;:!?()")
		if word != "" && word == strings.Trim(fields[i-1], ".,;:!?()") {
			return word
		}
	}
	return ""
}

// grammarScorer runs a heuristic language-quality check over bullet text:
// misspellings, doubled words, stray spacing, lowercase bullet openings, and
// first-person pronouns. Each issue deducts a fixed share of the maximum,
// down to zero.
type grammarScorer struct{}

func (grammarScorer) Code() string             { return "polish.grammar" }
func (grammarScorer) Category() types.Category { return types.CategoryPolish }

func (s grammarScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	perIssue := 0.15
	if ls.Penalty != nil {
		perIssue = ls.Penalty.PerIssue
	}

	var issues []string
	texts := in.Doc.AllBullets()
	if in.Doc.Summary != "" {
		texts = append(texts, in.Doc.Summary)
	}

	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,;:!?()")
			if correct, ok := commonMisspellings[word]; ok {
				issues = append(issues, fmt.Sprintf("misspelling: %q should be %q", word, correct))
			}
		}
		if word := doubledWord(text); word != "" {
			issues = append(issues, fmt.Sprintf("doubled word: %q", word))
		}
		if doubleSpacePattern.MatchString(text) {
			issues = append(issues, "multiple consecutive spaces")
		}
		if firstPersonPattern.MatchString(text) {
			issues = append(issues, fmt.Sprintf("first-person pronoun in %q", firstWords(text, 5)))
		}
	}
	for _, bullet := range in.Doc.AllBullets() {
		trimmed := strings.TrimLeft(strings.TrimSpace(bullet), "-*•· \t")
		if trimmed != "" {
			first := []rune(trimmed)[0]
			if unicode.IsLetter(first) && unicode.IsLower(first) {
				issues = append(issues, fmt.Sprintf("bullet starts lowercase: %q", firstWords(trimmed, 4)))
			}
		}
	}

	points := (1 - perIssue*float64(len(issues))) * max
	detail := map[string]any{"issue_count": len(issues)}
	if len(issues) > 0 {
		detail["issues"] = capList(issues, 8)
	}
	return additive(s.Code(), s.Category(), points, max, detail), nil
}

// contactScorer awards fixed points per present contact field: email and
// phone are required, a professional profile link and name are smaller
// bonuses. This is the one parameter where absence is the finding.
type contactScorer struct{}

func (contactScorer) Code() string             { return "polish.contact" }
func (contactScorer) Category() types.Category { return types.CategoryPolish }

func (s contactScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	present := map[string]string{
		"email":        in.Doc.Contact.Email,
		"phone":        in.Doc.Contact.Phone,
		"profile_link": in.Doc.Contact.ProfileLink,
		"name":         in.Doc.Contact.Name,
	}

	fields := make([]string, 0, len(ls.Fields))
	for field := range ls.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	points := 0.0
	var have, missing []string
	for _, field := range fields {
		if strings.TrimSpace(present[field]) != "" {
			points += ls.Fields[field]
			have = append(have, field)
		} else {
			missing = append(missing, field)
		}
	}

	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"present": have,
		"missing": missing,
	}), nil
}

// capList truncates a diagnostic list to at most n entries.
func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
