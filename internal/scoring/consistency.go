package scoring

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/types"
)

// daysPerMonth is the average used to convert date spans to months.
const daysPerMonth = 30.44

// datedEntry is an experience entry with resolved dates, used by the
// chronology-based penalty scorers. Entries with unparsable dates are
// excluded up front: unknown chronology is never penalized.
type datedEntry struct {
	entry types.ExperienceEntry
	start time.Time
	end   time.Time
	// ongoing marks an entry whose end date is "present".
	ongoing bool
}

// sortedDatedEntries resolves and chronologically sorts the parseable
// experience entries, oldest first.
func sortedDatedEntries(doc *types.NormalizedDocument, now time.Time) []datedEntry {
	var entries []datedEntry
	for _, exp := range doc.Experience {
		start, okStart := types.ParseDate(exp.StartDate)
		end, okEnd := types.EndOrNow(exp.EndDate, now)
		if !okStart || !okEnd {
			continue
		}
		ongoing := strings.EqualFold(strings.TrimSpace(exp.EndDate), types.Present) || strings.TrimSpace(exp.EndDate) == ""
		entries = append(entries, datedEntry{entry: exp, start: start, end: end, ongoing: ongoing})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].start.Before(entries[j].start) })
	return entries
}

func monthsBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24 / daysPerMonth
}

// gapScorer flags unexplained intervals above a threshold between
// consecutive roles. Each qualifying gap deducts a fixed penalty, capped.
type gapScorer struct {
	now func() time.Time
}

func (gapScorer) Code() string             { return "penalty.employment_gaps" }
func (gapScorer) Category() types.Category { return types.CategoryConsistency }

func (s gapScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	if ls.Penalty == nil {
		return penalty(s.Code(), 0, max, nil), nil
	}

	entries := sortedDatedEntries(in.Doc, s.nowOrDefault())
	var gaps []string
	for i := 1; i < len(entries); i++ {
		gap := monthsBetween(entries[i-1].end, entries[i].start)
		if gap > ls.Penalty.MinGapMonths {
			gaps = append(gaps, fmt.Sprintf("%.0f months between %s and %s",
				gap, entries[i-1].entry.Company, entries[i].entry.Company))
		}
	}

	deduction := ls.Penalty.PerIssue * float64(len(gaps))
	if deduction > ls.Penalty.Cap {
		deduction = ls.Penalty.Cap
	}

	detail := map[string]any{"gap_count": len(gaps)}
	if len(gaps) > 0 {
		detail["gaps"] = gaps
	}
	return penalty(s.Code(), deduction, max, detail), nil
}

func (s gapScorer) nowOrDefault() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// hoppingScorer flags a run of short tenures across consecutive roles.
// Short stints separated by long tenures are not a pattern. Ongoing roles
// are never counted as short and break a run: a tenure still in progress
// says nothing about how long it will last.
type hoppingScorer struct {
	now func() time.Time
}

func (hoppingScorer) Code() string             { return "penalty.job_hopping" }
func (hoppingScorer) Category() types.Category { return types.CategoryConsistency }

func (s hoppingScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	if ls.Penalty == nil {
		return penalty(s.Code(), 0, max, nil), nil
	}

	entries := sortedDatedEntries(in.Doc, s.nowOrDefault())
	var short []string
	run, longest := 0, 0
	for _, e := range entries {
		if e.ongoing {
			run = 0
			continue
		}
		tenure := monthsBetween(e.start, e.end)
		if tenure >= ls.Penalty.MinTenureMonths {
			run = 0
			continue
		}
		short = append(short, fmt.Sprintf("%s (%.0f months)", e.entry.Company, tenure))
		run++
		if run > longest {
			longest = run
		}
	}

	deduction := 0.0
	minRoles := ls.Penalty.MinConsecutiveRoles
	if minRoles > 0 && longest >= minRoles {
		deduction = ls.Penalty.PerIssue * float64(longest-minRoles+1)
		if deduction > ls.Penalty.Cap {
			deduction = ls.Penalty.Cap
		}
	}

	detail := map[string]any{"short_tenures": len(short), "consecutive_short": longest}
	if len(short) > 0 {
		detail["roles"] = short
	}
	return penalty(s.Code(), deduction, max, detail), nil
}

func (s hoppingScorer) nowOrDefault() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Date format shapes recognized for consistency checking.
var dateShapes = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"YYYY-MM-DD", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
	{"YYYY-MM", regexp.MustCompile(`^\d{4}-\d{2}$`)},
	{"MM/YYYY", regexp.MustCompile(`^\d{2}/\d{4}$`)},
	{"Month YYYY", regexp.MustCompile(`^[A-Za-z]{3,9} \d{4}$`)},
	{"YYYY", regexp.MustCompile(`^\d{4}$`)},
}

func dateShape(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, types.Present) {
		return ""
	}
	for _, shape := range dateShapes {
		if shape.pattern.MatchString(s) {
			return shape.name
		}
	}
	return ""
}

// dateFormatScorer deducts a flat penalty when experience dates mix formats,
// a formatting error that reads as carelessness and trips resume parsers.
type dateFormatScorer struct{}

func (dateFormatScorer) Code() string             { return "penalty.date_format" }
func (dateFormatScorer) Category() types.Category { return types.CategoryConsistency }

func (s dateFormatScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	if ls.Penalty == nil {
		return penalty(s.Code(), 0, max, nil), nil
	}

	shapes := make(map[string]bool)
	for _, exp := range in.Doc.Experience {
		for _, date := range []string{exp.StartDate, exp.EndDate} {
			if shape := dateShape(date); shape != "" {
				shapes[shape] = true
			}
		}
	}

	deduction := 0.0
	detail := map[string]any{}
	if len(shapes) > 1 {
		deduction = ls.Penalty.PerIssue
		if deduction > ls.Penalty.Cap {
			deduction = ls.Penalty.Cap
		}
		names := make([]string, 0, len(shapes))
		for name := range shapes {
			names = append(names, name)
		}
		sort.Strings(names)
		detail["formats"] = names
	}
	return penalty(s.Code(), deduction, max, detail), nil
}

// photoScorer deducts a flat penalty for an embedded photo, a known ATS
// extraction hazard and a bias liability in several markets.
type photoScorer struct{}

func (photoScorer) Code() string             { return "penalty.photo" }
func (photoScorer) Category() types.Category { return types.CategoryConsistency }

func (s photoScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}
	if ls.Penalty == nil || !in.Doc.Layout.HasPhoto {
		return penalty(s.Code(), 0, max, nil), nil
	}

	deduction := ls.Penalty.PerIssue
	if deduction > ls.Penalty.Cap {
		deduction = ls.Penalty.Cap
	}
	return penalty(s.Code(), deduction, max, map[string]any{"has_photo": true}), nil
}
