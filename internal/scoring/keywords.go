package scoring

import (
	"context"
	"strings"

	"github.com/jonathan/resume-scorer/internal/matcher"
	"github.com/jonathan/resume-scorer/internal/types"
)

// requiredKeywordScorer measures coverage of the role's required keyword set
// against the full document text through the hybrid matcher.
type requiredKeywordScorer struct{}

func (requiredKeywordScorer) Code() string             { return "keyword.required" }
func (requiredKeywordScorer) Category() types.Category { return types.CategoryKeywords }

func (s requiredKeywordScorer) Score(ctx context.Context, in *Input) (types.ParameterResult, error) {
	return scoreKeywordSet(ctx, in, s.Code(), s.Category(), in.Profile.RequiredKeywords)
}

// preferredKeywordScorer measures coverage of the role's nice-to-have
// keyword set, with its own independently configured tiers.
type preferredKeywordScorer struct{}

func (preferredKeywordScorer) Code() string             { return "keyword.preferred" }
func (preferredKeywordScorer) Category() types.Category { return types.CategoryKeywords }

func (s preferredKeywordScorer) Score(ctx context.Context, in *Input) (types.ParameterResult, error) {
	return scoreKeywordSet(ctx, in, s.Code(), s.Category(), in.Profile.PreferredKeywords)
}

// scoreKeywordSet computes the match rate of a keyword set and maps it
// through the parameter's tier ladder. An empty set scores neutral (full
// points): absence of expectations is never held against the document.
func scoreKeywordSet(ctx context.Context, in *Input, code string, category types.Category, keywords []string) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, code)
	if err != nil {
		return types.ParameterResult{}, err
	}

	if len(keywords) == 0 {
		return additive(code, category, max, max, map[string]any{"note": "no keywords configured for role"}), nil
	}

	threshold := in.Table.MatchThreshold(code)
	var matched, missing []string
	for _, kw := range keywords {
		if in.Match.Match(ctx, kw) >= threshold {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	rate := float64(len(matched)) / float64(len(keywords))
	points := ls.AwardFraction(rate) * max

	return additive(code, category, points, max, map[string]any{
		"matched":    matched,
		"missing":    missing,
		"match_rate": rate,
	}), nil
}

// skillsSectionScorer checks how many of the role's core skills appear in
// the skills list itself. Exact/synonym matching only: the skills section is
// short, enumerable text where semantic similarity adds nothing.
type skillsSectionScorer struct{}

func (skillsSectionScorer) Code() string             { return "keyword.skills_section" }
func (skillsSectionScorer) Category() types.Category { return types.CategoryKeywords }

func (s skillsSectionScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	core := in.Profile.CoreSkills
	if len(core) == 0 {
		return additive(s.Code(), s.Category(), max, max, map[string]any{"note": "no core skills configured for role"}), nil
	}

	skillsText := strings.Join(in.Doc.Skills, "\n")
	var covered, missing []string
	for _, skill := range core {
		if matcher.ContainsExact(skillsText, skill) {
			covered = append(covered, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	rate := float64(len(covered)) / float64(len(core))
	points := ls.AwardFraction(rate) * max

	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"covered":  covered,
		"missing":  missing,
		"coverage": rate,
	}), nil
}
