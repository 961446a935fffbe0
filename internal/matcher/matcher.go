package matcher

import (
	"context"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Weights configure the exact/semantic blend.
type Weights struct {
	Semantic float64
	Exact    float64
}

// DefaultWeights is the empirically tuned starting blend.
var DefaultWeights = Weights{Semantic: 0.7, Exact: 0.3}

// Matcher computes phrase-vs-document similarity scores. It is safe for
// concurrent use; per-document state lives in a Session.
type Matcher struct {
	embedder Embedder
	weights  Weights
}

// New creates a matcher. A nil embedder yields exact-match-only scoring and
// every session reports degraded mode.
func New(embedder Embedder, weights Weights) *Matcher {
	if weights.Semantic == 0 && weights.Exact == 0 {
		weights = DefaultWeights
	}
	return &Matcher{embedder: embedder, weights: weights}
}

// NewExact creates a matcher without a semantic backend.
func NewExact() *Matcher {
	return New(nil, DefaultWeights)
}

// Session holds request-scoped matching state for one document: the split
// spans and their embeddings, computed at most once and reused across every
// phrase query of the request.
type Session struct {
	m        *Matcher
	text     string
	spans    []string
	mu       sync.Mutex
	spanVecs [][]float32
	embedded bool
	degraded bool
}

// NewSession prepares a session for one document's text.
func (m *Matcher) NewSession(documentText string) *Session {
	return &Session{
		m:        m,
		text:     strings.ToLower(documentText),
		spans:    splitSpans(documentText),
		degraded: m.embedder == nil,
	}
}

// Degraded reports whether semantic scoring was unavailable for any query in
// this session, meaning scores reflect exact matching only.
func (s *Session) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Match scores a phrase against the session's document text, in [0, 1].
// A verbatim (or synonym) occurrence always scores 1.0: the blend is floored
// by the pure exact score, since cosine similarity between a short phrase
// and a long span is structurally low even for perfect textual matches.
func (s *Session) Match(ctx context.Context, phrase string) float64 {
	exact := 0.0
	if s.containsPhrase(phrase) {
		exact = 1.0
	}

	semantic := s.semanticScore(ctx, phrase)

	blended := s.m.weights.Semantic*semantic + s.m.weights.Exact*exact
	return math.Max(exact, blended)
}

// containsPhrase reports a word-boundary, case-insensitive occurrence of the
// phrase or any known synonym variant in the document text.
func (s *Session) containsPhrase(phrase string) bool {
	for _, variant := range variants(phrase) {
		if containsWord(s.text, variant) {
			return true
		}
	}
	return false
}

// semanticScore returns the best cosine similarity between the phrase
// embedding and any span embedding, or 0 when the backend is unavailable.
func (s *Session) semanticScore(ctx context.Context, phrase string) float64 {
	if s.m.embedder == nil || len(s.spans) == 0 {
		return 0
	}

	spanVecs, ok := s.spanEmbeddings(ctx)
	if !ok {
		return 0
	}

	phraseVec, err := s.m.embedder.Embed(ctx, strings.ToLower(phrase))
	if err != nil {
		s.markDegraded()
		return 0
	}

	best := 0.0
	for _, vec := range spanVecs {
		if sim := cosine(phraseVec, vec); sim > best {
			best = sim
		}
	}
	return best
}

// spanEmbeddings computes the span embeddings once per session.
func (s *Session) spanEmbeddings(ctx context.Context) ([][]float32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embedded {
		return s.spanVecs, s.spanVecs != nil
	}
	s.embedded = true

	vecs := make([][]float32, 0, len(s.spans))
	for _, span := range s.spans {
		vec, err := s.m.embedder.Embed(ctx, span)
		if err != nil {
			s.degraded = true
			s.spanVecs = nil
			return nil, false
		}
		vecs = append(vecs, vec)
	}
	s.spanVecs = vecs
	return vecs, true
}

func (s *Session) markDegraded() {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
}

// ContainsExact reports a word-boundary, case-insensitive occurrence of the
// phrase or any known synonym variant in text, without semantic scoring.
func ContainsExact(text, phrase string) bool {
	textLower := strings.ToLower(text)
	for _, variant := range variants(phrase) {
		if containsWord(textLower, variant) {
			return true
		}
	}
	return false
}

// containsWord reports whether needle occurs in haystack delimited by
// non-alphanumeric boundaries. Both arguments must already be lowercase.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// cosine computes cosine similarity between two vectors, 0 on dimension
// mismatch or zero magnitude.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
