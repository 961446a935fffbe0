package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSpans_LinesAndSentences(t *testing.T) {
	text := "Built the billing API. Reduced latency by 40%.\n\nSkills: Go, SQL\n"
	spans := splitSpans(text)

	require.Len(t, spans, 3)
	assert.Equal(t, "Built the billing API.", spans[0])
	assert.Equal(t, "Reduced latency by 40%.", spans[1])
	assert.Equal(t, "Skills: Go, SQL", spans[2])
}

func TestSplitSpans_EmptyInput(t *testing.T) {
	assert.Empty(t, splitSpans(""))
	assert.Empty(t, splitSpans("\n  \n\t\n"))
}

func TestSplitSpans_LongLineChunked(t *testing.T) {
	long := strings.Repeat("word ", 200) // ~1000 runes
	spans := splitSpans(long)

	require.Greater(t, len(spans), 1)
	for _, span := range spans {
		assert.LessOrEqual(t, len([]rune(span)), maxSpanRunes)
		assert.NotEmpty(t, span)
	}
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	sentences := splitSentences("one single fragment without punctuation")
	assert.Equal(t, []string{"one single fragment without punctuation"}, sentences)
}
