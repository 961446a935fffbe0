package matcher

import "strings"

// maxSpanRunes bounds span length so a single giant paragraph does not blow
// out embedding request size; longer spans are split at word boundaries.
const maxSpanRunes = 400

// splitSpans breaks document text into sentence/line granularity spans for
// semantic matching. Blank lines and whitespace-only fragments are dropped.
func splitSpans(text string) []string {
	var spans []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, sentence := range splitSentences(line) {
			for _, span := range chunk(sentence, maxSpanRunes) {
				if span != "" {
					spans = append(spans, span)
				}
			}
		}
	}
	return spans
}

// splitSentences splits a line at sentence terminators followed by a space.
func splitSentences(line string) []string {
	var sentences []string
	start := 0
	runes := []rune(line)
	for i := 0; i < len(runes)-1; i++ {
		if (runes[i] == '.' || runes[i] == '!' || runes[i] == '?') && runes[i+1] == ' ' {
			sentence := strings.TrimSpace(string(runes[start : i+1]))
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = i + 1
		}
	}
	last := strings.TrimSpace(string(runes[start:]))
	if last != "" {
		sentences = append(sentences, last)
	}
	return sentences
}

// chunk splits s into pieces of at most limit runes, breaking at spaces.
func chunk(s string, limit int) []string {
	runes := []rune(s)
	if len(runes) <= limit {
		return []string{strings.TrimSpace(s)}
	}

	var pieces []string
	for len(runes) > limit {
		cut := limit
		for cut > 0 && runes[cut] != ' ' {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		pieces = append(pieces, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		pieces = append(pieces, rest)
	}
	return pieces
}
