// Package thresholds defines the versioned threshold table: the per-level,
// per-parameter tier boundaries and point policies every scorer reads from.
// Tables are loaded once at startup, validated eagerly, and treated as
// read-only afterwards so concurrent scoring requests can share one table.
package thresholds

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// ParameterCodes lists every parameter the engine registers. A loaded table
// must resolve a level spec for each of these for every level; anything less
// is a fatal configuration error.
var ParameterCodes = []string{
	"keyword.required",
	"keyword.preferred",
	"keyword.skills_section",
	"impact.quantification",
	"impact.action_verbs",
	"impact.bullet_depth",
	"structure.page_count",
	"structure.section_balance",
	"structure.ats_format",
	"structure.word_count",
	"structure.bullet_count",
	"polish.grammar",
	"polish.contact",
	"readability.sentence_length",
	"readability.buzzwords",
	"readability.voice",
	"penalty.employment_gaps",
	"penalty.job_hopping",
	"penalty.date_format",
	"penalty.photo",
}

// MissingEntryError reports a level/parameter combination absent from the
// table. Raised at load time, never mid-request.
type MissingEntryError struct {
	Parameter string
	Level     types.Level
}

func (e *MissingEntryError) Error() string {
	if e.Level == "" {
		return fmt.Sprintf("threshold table: missing parameter %q", e.Parameter)
	}
	return fmt.Sprintf("threshold table: parameter %q has no entry for level %q", e.Parameter, e.Level)
}

// Tier maps a minimum metric value to the fraction of the parameter's
// maximum points awarded at or above it.
type Tier struct {
	Min      float64 `json:"min"`
	Fraction float64 `json:"fraction"`
}

// Band is an inclusive healthy range for a continuous metric.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Near reports whether v falls within tolerance (a fraction of the band
// boundary) outside the band.
func (b Band) Near(v, tolerance float64) bool {
	if b.Contains(v) {
		return true
	}
	return v >= b.Min*(1-tolerance) && v <= b.Max*(1+tolerance)
}

// SectionRange bounds one section's share of total word count. A zero
// MinShare or MaxShare means unbounded on that side.
type SectionRange struct {
	Section  string  `json:"section"`
	MinShare float64 `json:"min_share,omitempty"`
	MaxShare float64 `json:"max_share,omitempty"`
	// Penalty is the fraction of max points deducted when violated.
	Penalty float64 `json:"penalty"`
}

// PenaltySpec configures a penalty-only parameter.
type PenaltySpec struct {
	// PerIssue points deducted per qualifying finding.
	PerIssue float64 `json:"per_issue"`
	// Cap bounds the total deduction for the parameter.
	Cap float64 `json:"cap"`

	MinGapMonths        float64 `json:"min_gap_months,omitempty"`
	MinTenureMonths     float64 `json:"min_tenure_months,omitempty"`
	MinConsecutiveRoles int     `json:"min_consecutive_roles,omitempty"`
}

// LevelSpec holds one parameter's policy for one level. Which fields are
// populated depends on the parameter.
type LevelSpec struct {
	Tiers    []Tier             `json:"tiers,omitempty"`
	Pages    map[string]float64 `json:"pages,omitempty"`
	Band     *Band              `json:"band,omitempty"`
	Sections []SectionRange     `json:"sections,omitempty"`
	Fields   map[string]float64 `json:"fields,omitempty"`
	Penalty  *PenaltySpec       `json:"penalty,omitempty"`
}

// AwardFraction maps a metric through the tier ladder: the fraction of the
// highest tier whose Min the rate meets. Tiers need not be pre-sorted.
func (s LevelSpec) AwardFraction(rate float64) float64 {
	tiers := make([]Tier, len(s.Tiers))
	copy(tiers, s.Tiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Min > tiers[j].Min })
	for _, t := range tiers {
		if rate >= t.Min {
			return t.Fraction
		}
	}
	return 0
}

// PageFraction resolves a page count against the page lookup. Keys are exact
// counts ("2") or open-ended ("4+"). Unmatched counts score 0.
func (s LevelSpec) PageFraction(pages int) float64 {
	if s.Pages == nil {
		return 0
	}
	if frac, ok := s.Pages[strconv.Itoa(pages)]; ok {
		return frac
	}
	// Open-ended keys: pick the highest "N+" bucket the count reaches.
	bestN := -1
	bestFrac := 0.0
	for key, frac := range s.Pages {
		if !strings.HasSuffix(key, "+") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(key, "+"))
		if err != nil {
			continue
		}
		if pages >= n && n > bestN {
			bestN = n
			bestFrac = frac
		}
	}
	if bestN >= 0 {
		return bestFrac
	}
	return 0
}

// ParameterSpec holds one parameter's policy across levels. Default, when
// present, backs any level without an explicit entry.
type ParameterSpec struct {
	MaxPoints float64 `json:"max_points"`
	// MatchThreshold overrides the table-wide matcher threshold for
	// keyword parameters.
	MatchThreshold float64                   `json:"match_threshold,omitempty"`
	Default        *LevelSpec                `json:"default,omitempty"`
	Levels         map[types.Level]LevelSpec `json:"levels,omitempty"`
}

// MatchSpec configures the exact/semantic blend of the matcher.
type MatchSpec struct {
	SemanticWeight   float64 `json:"semantic_weight"`
	ExactWeight      float64 `json:"exact_weight"`
	DefaultThreshold float64 `json:"default_threshold"`
}

// Table is a complete, versioned threshold configuration.
type Table struct {
	Version    string                   `json:"version"`
	Match      MatchSpec                `json:"match"`
	Parameters map[string]ParameterSpec `json:"parameters"`
}

// Parameter returns the spec for a parameter code.
func (t *Table) Parameter(code string) (ParameterSpec, error) {
	spec, ok := t.Parameters[code]
	if !ok {
		return ParameterSpec{}, &MissingEntryError{Parameter: code}
	}
	return spec, nil
}

// Level resolves the level spec for a parameter, falling back to the
// parameter's default entry.
func (t *Table) Level(code string, level types.Level) (LevelSpec, error) {
	spec, err := t.Parameter(code)
	if err != nil {
		return LevelSpec{}, err
	}
	if ls, ok := spec.Levels[level]; ok {
		return ls, nil
	}
	if spec.Default != nil {
		return *spec.Default, nil
	}
	return LevelSpec{}, &MissingEntryError{Parameter: code, Level: level}
}

// MatchThreshold returns the match threshold for a parameter, falling back
// to the table-wide default.
func (t *Table) MatchThreshold(code string) float64 {
	if spec, ok := t.Parameters[code]; ok && spec.MatchThreshold > 0 {
		return spec.MatchThreshold
	}
	return t.Match.DefaultThreshold
}

// Validate checks the table is complete: every registered parameter resolves
// a level spec for every level. Returns the first missing combination.
func (t *Table) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("threshold table: version is required")
	}
	if t.Match.SemanticWeight < 0 || t.Match.ExactWeight < 0 {
		return fmt.Errorf("threshold table: match weights must be non-negative")
	}
	if t.Match.DefaultThreshold <= 0 || t.Match.DefaultThreshold > 1 {
		return fmt.Errorf("threshold table: default match threshold %.2f outside (0, 1]", t.Match.DefaultThreshold)
	}
	for _, code := range ParameterCodes {
		spec, err := t.Parameter(code)
		if err != nil {
			return err
		}
		if spec.MaxPoints <= 0 {
			return fmt.Errorf("threshold table: parameter %q max_points must be positive", code)
		}
		for _, level := range types.Levels {
			if _, err := t.Level(code, level); err != nil {
				return err
			}
		}
	}
	return nil
}
