package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// strengthRatio is the share of max points at which a parameter is
	// surfaced as a strength.
	strengthRatio = 0.9
	// maxWeaknesses bounds how many weaknesses are surfaced.
	maxWeaknesses = 5
	// minGapWorthMentioning filters noise: gaps smaller than this never
	// surface as weaknesses.
	minGapWorthMentioning = 0.5
)

// strengthMessages describe parameters scored at or near their maximum.
var strengthMessages = map[string]string{
	"keyword.required":            "Strong coverage of the role's required keywords",
	"keyword.preferred":           "Good coverage of nice-to-have keywords",
	"keyword.skills_section":      "Skills section covers the role's core skills",
	"impact.quantification":       "Achievements are well quantified with concrete metrics",
	"impact.action_verbs":         "Bullets lead with strong action verbs",
	"impact.bullet_depth":         "Bullet points carry a healthy level of detail",
	"structure.page_count":        "Page count is appropriate for the experience level",
	"structure.section_balance":   "Sections are well balanced",
	"structure.ats_format":        "Formatting is clean for applicant tracking systems",
	"structure.word_count":        "Overall length is appropriate",
	"structure.bullet_count":      "Roles carry an appropriate number of bullets",
	"polish.grammar":              "Writing is clean with no language issues detected",
	"polish.contact":              "Contact information is complete",
	"readability.sentence_length": "Bullets are concise and scannable",
	"readability.buzzwords":       "Text avoids clichés and filler phrases",
	"readability.voice":           "Bullets are written in active voice",
}

// recommendationBuilders produce a parameter-specific recommendation message
// populated from the scorer's diagnostic detail.
var recommendationBuilders = map[string]func(r types.ParameterResult) string{
	"keyword.required": func(r types.ParameterResult) string {
		if missing := detailStrings(r, "missing"); len(missing) > 0 {
			return fmt.Sprintf("Work these required keywords into your experience bullets: %s.", strings.Join(capList(missing, 5), ", "))
		}
		return "Increase coverage of the role's required keywords in your experience bullets."
	},
	"keyword.preferred": func(r types.ParameterResult) string {
		if missing := detailStrings(r, "missing"); len(missing) > 0 {
			return fmt.Sprintf("Consider mentioning these nice-to-have keywords where truthful: %s.", strings.Join(capList(missing, 5), ", "))
		}
		return "Add more of the role's nice-to-have keywords where they reflect real experience."
	},
	"keyword.skills_section": func(r types.ParameterResult) string {
		if missing := detailStrings(r, "missing"); len(missing) > 0 {
			return fmt.Sprintf("Add these core skills to your skills section: %s.", strings.Join(capList(missing, 5), ", "))
		}
		return "List more of the role's core skills in your skills section."
	},
	"impact.quantification": func(r types.ParameterResult) string {
		return "Quantify more achievements with business impact: percentages, dollar amounts, or multipliers carry the most weight."
	},
	"impact.action_verbs": func(r types.ParameterResult) string {
		if examples := detailStrings(r, "weak_examples"); len(examples) > 0 {
			return fmt.Sprintf("Replace weak leading verbs with strong ones (e.g. %q). Start bullets with verbs like led, built, delivered, or reduced.", examples[0])
		}
		return "Start more bullets with strong action verbs such as led, built, delivered, or reduced."
	},
	"impact.bullet_depth": func(r types.ParameterResult) string {
		return "Rework very short or very long bullets; aim for one concrete accomplishment of roughly 8-28 words each."
	},
	"structure.page_count": func(r types.ParameterResult) string {
		return "Adjust the resume length toward the optimal page count for your experience level."
	},
	"structure.section_balance": func(r types.ParameterResult) string {
		if violations := detailStrings(r, "violations"); len(violations) > 0 {
			return fmt.Sprintf("Rebalance sections: %s.", strings.Join(capList(violations, 2), "; "))
		}
		return "Rebalance section lengths: experience should dominate, skills and summary should stay brief."
	},
	"structure.ats_format": func(r types.ParameterResult) string {
		if issues := detailStrings(r, "issues"); len(issues) > 0 {
			return fmt.Sprintf("Remove layout features that break resume parsers: %s.", strings.Join(issues, ", "))
		}
		return "Simplify layout: avoid tables, text boxes, headers/footers, and embedded images."
	},
	"structure.word_count": func(r types.ParameterResult) string {
		return "Bring the total word count into a healthy range for your experience level."
	},
	"structure.bullet_count": func(r types.ParameterResult) string {
		return "Aim for three to seven bullets per role; consolidate or expand where needed."
	},
	"polish.grammar": func(r types.ParameterResult) string {
		if issues := detailStrings(r, "issues"); len(issues) > 0 {
			return fmt.Sprintf("Fix language issues, e.g. %s.", issues[0])
		}
		return "Proofread for spelling, doubled words, and stray spacing."
	},
	"polish.contact": func(r types.ParameterResult) string {
		if missing := detailStrings(r, "missing"); len(missing) > 0 {
			return fmt.Sprintf("Add missing contact fields: %s.", strings.Join(missing, ", "))
		}
		return "Complete your contact information."
	},
	"readability.sentence_length": func(r types.ParameterResult) string {
		return "Tighten long bullets and expand one-liners; aim for 10-26 words per bullet."
	},
	"readability.buzzwords": func(r types.ParameterResult) string {
		if found := detailStrings(r, "buzzwords"); len(found) > 0 {
			return fmt.Sprintf("Replace clichés with concrete specifics: %s.", strings.Join(capList(found, 4), ", "))
		}
		return "Replace clichés and filler phrases with concrete specifics."
	},
	"readability.voice": func(r types.ParameterResult) string {
		if examples := detailStrings(r, "passive_examples"); len(examples) > 0 {
			return fmt.Sprintf("Rewrite passive constructions in active voice (e.g. %q).", examples[0])
		}
		return "Rewrite passive constructions in active voice."
	},
	"penalty.employment_gaps": func(r types.ParameterResult) string {
		if gaps := detailStrings(r, "gaps"); len(gaps) > 0 {
			return fmt.Sprintf("Address employment gaps (%s): add freelance, education, or other activity covering them.", gaps[0])
		}
		return "Address unexplained employment gaps with covering activity or an explanation."
	},
	"penalty.job_hopping": func(r types.ParameterResult) string {
		return "Several short tenures read as job-hopping; consider grouping contract roles under one heading."
	},
	"penalty.date_format": func(r types.ParameterResult) string {
		if formats := detailStrings(r, "formats"); len(formats) > 1 {
			return fmt.Sprintf("Use one date format throughout; the document mixes %s.", strings.Join(formats, " and "))
		}
		return "Use one consistent date format for all experience entries."
	},
	"penalty.photo": func(r types.ParameterResult) string {
		return "Remove the embedded photo; it can break text extraction and invites bias."
	},
}

// buildFeedback ranks parameters by recoverable points and renders
// strengths, weaknesses, and prioritized recommendations.
func buildFeedback(results []types.ParameterResult) types.Feedback {
	feedback := types.Feedback{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []types.Recommendation{},
	}

	type gap struct {
		result types.ParameterResult
		size   float64
	}
	var gaps []gap

	for _, r := range results {
		switch r.Kind {
		case types.KindPenalty:
			if r.Points < 0 {
				gaps = append(gaps, gap{result: r, size: -r.Points})
			}
		default:
			if r.MaxPoints > 0 && r.Points >= strengthRatio*r.MaxPoints {
				if msg, ok := strengthMessages[r.Code]; ok {
					feedback.Strengths = append(feedback.Strengths, msg)
				}
				continue
			}
			gaps = append(gaps, gap{result: r, size: r.MaxPoints - r.Points})
		}
	}

	// Rank by recoverable points as the improvement-impact proxy. Ties
	// break on code so output stays deterministic.
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].size != gaps[j].size {
			return gaps[i].size > gaps[j].size
		}
		return gaps[i].result.Code < gaps[j].result.Code
	})

	for _, g := range gaps {
		if g.size < minGapWorthMentioning || len(feedback.Recommendations) >= maxWeaknesses {
			break
		}
		feedback.Weaknesses = append(feedback.Weaknesses, weaknessMessage(g.result))
		feedback.Recommendations = append(feedback.Recommendations, types.Recommendation{
			ParameterCode:   g.result.Code,
			EstimatedImpact: g.size,
			Message:         recommendationMessage(g.result),
		})
	}

	return feedback
}

func weaknessMessage(r types.ParameterResult) string {
	if r.Kind == types.KindPenalty {
		return fmt.Sprintf("%s cost %.1f points", describeParameter(r.Code), -r.Points)
	}
	return fmt.Sprintf("%s scored %.1f of %.1f points", describeParameter(r.Code), r.Points, r.MaxPoints)
}

func recommendationMessage(r types.ParameterResult) string {
	if builder, ok := recommendationBuilders[r.Code]; ok {
		return builder(r)
	}
	return fmt.Sprintf("Improve %s.", describeParameter(r.Code))
}

// parameterDescriptions give each code a human-readable name for feedback.
var parameterDescriptions = map[string]string{
	"keyword.required":            "Required keyword coverage",
	"keyword.preferred":           "Preferred keyword coverage",
	"keyword.skills_section":      "Core skill listing",
	"impact.quantification":       "Achievement quantification",
	"impact.action_verbs":         "Action verb strength",
	"impact.bullet_depth":         "Bullet detail",
	"structure.page_count":        "Page count",
	"structure.section_balance":   "Section balance",
	"structure.ats_format":        "ATS-safe formatting",
	"structure.word_count":        "Document length",
	"structure.bullet_count":      "Bullets per role",
	"polish.grammar":              "Language quality",
	"polish.contact":              "Contact completeness",
	"readability.sentence_length": "Bullet length",
	"readability.buzzwords":       "Buzzword density",
	"readability.voice":           "Active voice",
	"penalty.employment_gaps":     "Employment gaps",
	"penalty.job_hopping":         "Short tenures",
	"penalty.date_format":         "Date format consistency",
	"penalty.photo":               "Embedded photo",
}

func describeParameter(code string) string {
	if desc, ok := parameterDescriptions[code]; ok {
		return desc
	}
	return code
}

// detailStrings extracts a []string diagnostic from a result's detail map,
// tolerating both []string and []any encodings.
func detailStrings(r types.ParameterResult, key string) []string {
	if r.Detail == nil {
		return nil
	}
	switch v := r.Detail[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
