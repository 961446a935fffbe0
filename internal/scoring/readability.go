package scoring

import (
	"bytes"
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// buzzwords are clichés and filler phrases that dilute resume text.
var buzzwords = []string{
	"team player",
	"hard worker",
	"hard-working",
	"go-getter",
	"self-starter",
	"think outside the box",
	"outside the box",
	"results-driven",
	"results-oriented",
	"detail-oriented",
	"synergy",
	"synergize",
	"go above and beyond",
	"proven track record",
	"dynamic",
	"guru",
	"ninja",
	"rockstar",
	"passionate",
	"best of breed",
	"win-win",
	"value-add",
	"thought leader",
}

// buzzwordsByLength orders the phrase list longest first so a nested phrase
// ("outside the box") is not recounted inside an already-matched longer one
// ("think outside the box").
var buzzwordsByLength = func() []string {
	phrases := append([]string(nil), buzzwords...)
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	return phrases
}()

// countPhrase counts whole-word occurrences of phrase in text and masks each
// match so shorter phrases contained in it are not counted again.
func countPhrase(text []byte, phrase string) int {
	count := 0
	needle := []byte(phrase)
	for start := 0; start+len(needle) <= len(text); {
		idx := bytes.Index(text[start:], needle)
		if idx < 0 {
			break
		}
		idx += start
		end := idx + len(needle)
		if wordChar(text, idx-1) || wordChar(text, end) {
			start = idx + 1
			continue
		}
		count++
		for i := idx; i < end; i++ {
			text[i] = '*'
		}
		start = end
	}
	return count
}

func wordChar(text []byte, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	c := text[i]
	return c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// passivePattern flags common passive-voice constructions in bullets.
var passivePattern = regexp.MustCompile(`(?i)\b(was|were|been|being|is|are)\s+\w+(ed|en)\b`)

// sentenceLengthScorer checks the average words per bullet sentence against
// a healthy band: long enough to inform, short enough to scan.
type sentenceLengthScorer struct{}

func (sentenceLengthScorer) Code() string             { return "readability.sentence_length" }
func (sentenceLengthScorer) Category() types.Category { return types.CategoryReadability }

func (s sentenceLengthScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	bullets := in.Doc.AllBullets()
	if len(bullets) == 0 || ls.Band == nil {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no bullets found"}), nil
	}

	totalWords := 0
	for _, bullet := range bullets {
		totalWords += len(strings.Fields(bullet))
	}
	avg := float64(totalWords) / float64(len(bullets))

	points := bandPoints(avg, *ls.Band, max)
	return additive(s.Code(), s.Category(), points, max, map[string]any{
		"average_words": avg,
	}), nil
}

// buzzwordScorer measures cliché density across bullets and summary and maps
// its inverse through the tier ladder.
type buzzwordScorer struct{}

func (buzzwordScorer) Code() string             { return "readability.buzzwords" }
func (buzzwordScorer) Category() types.Category { return types.CategoryReadability }

func (s buzzwordScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	bullets := in.Doc.AllBullets()
	text := strings.ToLower(strings.Join(bullets, "\n") + "\n" + in.Doc.Summary)
	if len(bullets) == 0 && in.Doc.Summary == "" {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no text to check"}), nil
	}

	hits := 0
	var found []string
	masked := []byte(text)
	for _, phrase := range buzzwordsByLength {
		count := countPhrase(masked, phrase)
		if count > 0 {
			hits += count
			found = append(found, phrase)
		}
	}
	sort.Strings(found)

	units := len(bullets)
	if in.Doc.Summary != "" {
		units++
	}
	density := float64(hits) / float64(units)
	if density > 1 {
		density = 1
	}

	points := ls.AwardFraction(1-density) * max
	detail := map[string]any{"density": density}
	if len(found) > 0 {
		detail["buzzwords"] = found
	}
	return additive(s.Code(), s.Category(), points, max, detail), nil
}

// voiceScorer measures the share of bullets written in active voice and maps
// it through the tier ladder.
type voiceScorer struct{}

func (voiceScorer) Code() string             { return "readability.voice" }
func (voiceScorer) Category() types.Category { return types.CategoryReadability }

func (s voiceScorer) Score(_ context.Context, in *Input) (types.ParameterResult, error) {
	ls, max, err := levelSpec(in, s.Code())
	if err != nil {
		return types.ParameterResult{}, err
	}

	bullets := in.Doc.AllBullets()
	if len(bullets) == 0 {
		return additive(s.Code(), s.Category(), max*0.5, max, map[string]any{"note": "no bullets found"}), nil
	}

	passive := 0
	var examples []string
	for _, bullet := range bullets {
		if passivePattern.MatchString(bullet) {
			passive++
			if len(examples) < 3 {
				examples = append(examples, firstWords(bullet, 6))
			}
		}
	}

	activeRate := 1 - float64(passive)/float64(len(bullets))
	points := ls.AwardFraction(activeRate) * max

	detail := map[string]any{
		"active_rate":     activeRate,
		"passive_bullets": passive,
	}
	if len(examples) > 0 {
		detail["passive_examples"] = examples
	}
	return additive(s.Code(), s.Category(), points, max, detail), nil
}
