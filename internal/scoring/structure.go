package scoring

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-scorer/internal/types"
)

// pageCountScorer scores page count through a direct (level, pages) lookup.
// What counts as optimal shifts with seniority: one page for a junior,
// two for a senior, with a single senior page scored as too brief.
type pageCountScorer struct{}

func (pageCountScorer) Code() string             { return "structure.page_count" }
func (pageCountScorer) Category() types.Category { return types.CategoryStructure }

func (s pageCountScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	pages := in.Doc.Layout.PageCount
	if pages <= 0 {
		// Ingestion could not determine a page count; neutral.
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "page count unavailable"}), nil
	}

	points := ls.PageFraction(pages) * max
	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"page_count": pages,
	}), nil
}

// sectionBalanceScorer penalizes sections whose share of total word count
// falls outside empirically healthy ranges: too little experience detail,
// keyword-stuffed skills, verbose summaries. Penalties are additive up to a
// cap, then inverted into points.
type sectionBalanceScorer struct{}

func (sectionBalanceScorer) Code() string             { return "structure.section_balance" }
func (sectionBalanceScorer) Category() types.Category { return types.CategoryStructure }

func (s sectionBalanceScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	counts := in.Doc.Layout.SectionWordCounts
	total := in.Doc.Layout.WordCount
	if len(counts) == 0 || total <= 0 {
		// Section boundaries were not located; benefit of the doubt.
		return additive(s.Code(), s.Category(), max, max, map[string]any{"note": "section word counts unavailable"}), nil
	}

	penaltyFraction := 0.0
	var violations []string
	for _, rng := range ls.Sections {
		words, ok := counts[rng.Section]
		if !ok {
			continue
		}
		share := float64(words) / float64(total)
		switch {
		case rng.MinShare > 0 && share < rng.MinShare:
			penaltyFraction += rng.Penalty
			violations = append(violations, fmt.Sprintf("%s section is %.0f%% of the document, below the %.0f%% floor", rng.Section, share*100, rng.MinShare*100))
		case rng.MaxShare > 0 && share > rng.MaxShare:
			penaltyFraction += rng.Penalty
			violations = append(violations, fmt.Sprintf("%s section is %.0f%% of the document, above the %.0f%% ceiling", rng.Section, share*100, rng.MaxShare*100))
		}
	}
	if penaltyFraction > 1 {
		penaltyFraction = 1
	}

	points := (1 - penaltyFraction) * max
	detail := map[string]any{}
	if len(violations) > 0 {
		detail["violations"] = violations
	}
	return additive(s.Code(), s.Category(), points, max, detail), nil
}

// atsIssue pairs a detected layout hazard with its description.
type atsIssue struct {
	code        string
	description string
}

// atsFormatScorer deducts a fixed penalty per detected layout issue type,
// non-cumulative per type, reflecting known text-extraction failure modes of
// applicant tracking systems.
type atsFormatScorer struct{}

func (atsFormatScorer) Code() string             { return "structure.ats_format" }
func (atsFormatScorer) Category() types.Category { return types.CategoryStructure }

func (s atsFormatScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	layout := in.Doc.Layout
	var issues []atsIssue
	if layout.HasTables {
		issues = append(issues, atsIssue{"tables", "tables are often flattened or dropped during text extraction"})
	}
	if layout.HasTextBoxes {
		issues = append(issues, atsIssue{"text_boxes", "text boxes are frequently skipped by resume parsers"})
	}
	if layout.HasHeaderFooter {
		issues = append(issues, atsIssue{"header_footer", "content in headers/footers may not be extracted"})
	}
	if layout.HasImages {
		issues = append(issues, atsIssue{"images", "embedded images are invisible to text-based screening"})
	}
	if len(layout.NonStandardFonts) > 0 {
		issues = append(issues, atsIssue{"fonts", "non-standard fonts can break character extraction"})
	}

	perIssue := 0.25
	if ls.Penalty != nil {
		perIssue = ls.Penalty.PerIssue
	}

	points := (1 - perIssue*float64(len(issues))) * max
	detail := map[string]any{}
	if len(issues) > 0 {
		codes := make([]string, len(issues))
		descriptions := make([]string, len(issues))
		for i, issue := range issues {
			codes[i] = issue.code
			descriptions[i] = issue.description
		}
		detail["issues"] = codes
		detail["descriptions"] = descriptions
	}
	return additive(s.Code(), s.Category(), points, max, detail), nil
}

// wordCountScorer checks the document's total word count against a
// level-appropriate band.
type wordCountScorer struct{}

func (wordCountScorer) Code() string             { return "structure.word_count" }
func (wordCountScorer) Category() types.Category { return types.CategoryStructure }

func (s wordCountScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	words := in.Doc.Layout.WordCount
	if words <= 0 || ls.Band == nil {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "word count unavailable"}), nil
	}

	points := bandPoints(float64(words), *ls.Band, max)
	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"word_count": words,
	}), nil
}

// bulletCountScorer checks the average number of bullets per experience
// entry against a healthy band.
type bulletCountScorer struct{}

func (bulletCountScorer) Code() string             { return "structure.bullet_count" }
func (bulletCountScorer) Category() types.Category { return types.CategoryStructure }

func (s bulletCountScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	if len(in.Doc.Experience) == 0 || ls.Band == nil {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no experience entries"}), nil
	}

	total := 0
	for _, exp := range in.Doc.Experience {
		total += len(exp.Bullets)
	}
	avg := float64(total) / float64(len(in.Doc.Experience))

	points := bandPoints(avg, *ls.Band, max)
	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"average_bullets": avg,
		"total_bullets":   total,
		"entries":         len(in.Doc.Experience),
	}), nil
}
