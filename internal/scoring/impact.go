package scoring

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// MetricClass grades the strongest quantification found in a bullet.
type MetricClass int

// Metric classes, weakest first.
const (
	// MetricNone means no quantification was found.
	MetricNone MetricClass = iota
	// MetricLow is a bare number with no context.
	MetricLow
	// MetricMedium is a scope indicator: team size, duration, volume.
	MetricMedium
	// MetricHigh is a business-impact metric: percentage, currency, multiplier.
	MetricHigh
)

// Weighted contribution of each metric class to the quantification rate.
const (
	weightHighMetric   = 1.0
	weightMediumMetric = 0.7
	weightLowMetric    = 0.3
)

var (
	percentPattern    = regexp.MustCompile(`\d+(\.\d+)?\s*(%|percent)`)
	currencyPattern   = regexp.MustCompile(`[$€£]\s*\d|\d+\s*(usd|eur|gbp)\b`)
	multiplierPattern = regexp.MustCompile(`\b\d+(\.\d+)?x\b`)
	scopePattern      = regexp.MustCompile(`\b\d+\+?\s*(engineers?|developers?|people|members?|reports?|teams?|months?|years?|weeks?|users?|customers?|clients?|requests?|services?|countries|regions?)\b|\bteam of \d+`)
	magnitudePattern  = regexp.MustCompile(`\b\d+(\.\d+)?\s*(k|m|b)\b|\b(million|billion|thousand)s?\b`)
	digitPattern      = regexp.MustCompile(`\d`)
)

// ClassifyMetric grades a bullet's quantification. Precedence is
// high > medium > low: a bullet carrying both a percentage and a team size
// counts once, as high.
func ClassifyMetric(bullet string) MetricClass {
	lower := strings.ToLower(bullet)
	switch {
	case percentPattern.MatchString(lower),
		currencyPattern.MatchString(lower),
		multiplierPattern.MatchString(lower):
		return MetricHigh
	case scopePattern.MatchString(lower), magnitudePattern.MatchString(lower):
		return MetricMedium
	case digitPattern.MatchString(lower):
		return MetricLow
	default:
		return MetricNone
	}
}

// quantificationScorer computes the weighted quantification rate of all
// bullets and maps it through level-specific tiers: senior candidates are
// expected to quantify more of their work than juniors.
type quantificationScorer struct{}

func (quantificationScorer) Code() string             { return "impact.quantification" }
func (quantificationScorer) Category() types.Category { return types.CategoryImpact }

func (s quantificationScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	bullets := in.Doc.AllBullets()
	if len(bullets) == 0 {
		// Nothing to grade; neutral rather than punitive.
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no bullets found"}), nil
	}

	var high, medium, low int
	for _, bullet := range bullets {
		switch ClassifyMetric(bullet) {
		case MetricHigh:
			high++
		case MetricMedium:
			medium++
		case MetricLow:
			low++
		}
	}

	rate := (weightHighMetric*float64(high) + weightMediumMetric*float64(medium) + weightLowMetric*float64(low)) / float64(len(bullets))
	points := ls.AwardFraction(rate) * max

	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"weighted_rate":  rate,
		"high_metrics":   high,
		"medium_metrics": medium,
		"low_metrics":    low,
		"total_bullets":  len(bullets),
	}), nil
}

// actionVerbScorer measures the share of bullets led by a top-two-tier verb
// against a level-aware threshold ladder.
type actionVerbScorer struct{}

func (actionVerbScorer) Code() string             { return "impact.action_verbs" }
func (actionVerbScorer) Category() types.Category { return types.CategoryImpact }

func (s actionVerbScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	bullets := in.Doc.AllBullets()
	if len(bullets) == 0 {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no bullets found"}), nil
	}

	strong := 0
	var weakExamples []string
	for _, bullet := range bullets {
		tier := classifyLeadingVerb(bullet)
		if tier == TierStrategic || tier == TierStrong {
			strong++
		} else if tier == TierWeak && len(weakExamples) < 3 {
			weakExamples = append(weakExamples, firstWords(bullet, 6))
		}
	}

	rate := float64(strong) / float64(len(bullets))
	points := ls.AwardFraction(rate) * max

	detail := map[string]any{
		"strong_verb_rate": rate,
		"strong_bullets":   strong,
		"total_bullets":    len(bullets),
	}
	if len(weakExamples) > 0 {
		detail["weak_examples"] = weakExamples
	}
	return additive(s.Code(), s.Category(), points, max, detail), nil
}

// bulletDepthScorer checks the share of bullets whose word count falls in a
// healthy band: long enough to carry substance, short enough to stay
// scannable.
type bulletDepthScorer struct{}

func (bulletDepthScorer) Code() string             { return "impact.bullet_depth" }
func (bulletDepthScorer) Category() types.Category { return types.CategoryImpact }

func (s bulletDepthScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	if ls.Band == nil {
		return additive(s.Code(), s.Category(), max, max, nil), nil
	}

	bullets := in.Doc.AllBullets()
	if len(bullets) == 0 {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no bullets found"}), nil
	}

	inBand := 0
	for _, bullet := range bullets {
		words := len(strings.Fields(bullet))
		if ls.Band.Contains(float64(words)) {
			inBand++
		}
	}

	rate := float64(inBand) / float64(len(bullets))
	points := ls.AwardFraction(rate) * max

	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"in_band_rate":  rate,
		"in_band":       inBand,
		"total_bullets": len(bullets),
	}), nil
}

// firstWords truncates text to its first n words for diagnostics.
func firstWords(text string, n int) string {
	fields := strings.Fields(strings.TrimLeft(strings.TrimSpace(text), "-*•· \t"))
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ") + "..."
}
