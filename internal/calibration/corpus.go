// Package calibration runs the scoring engine over a benchmark corpus of
// documents with externally known target scores and reports per-document
// deltas, guiding iterative threshold tuning. It is an offline tool, never
// part of the request-time path.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// BenchmarkDoc is one corpus entry: a normalized document, its scoring
// context, and the externally sourced target score.
type BenchmarkDoc struct {
	Name     string                   `json:"name"`
	Target   float64                  `json:"target"`
	Context  types.ScoringContext     `json:"context"`
	Document types.NormalizedDocument `json:"document"`
}

// Validate checks a corpus entry is usable.
func (b *BenchmarkDoc) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("benchmark document has no name")
	}
	if b.Target < 0 || b.Target > 100 {
		return fmt.Errorf("benchmark %s: target %.1f outside [0, 100]", b.Name, b.Target)
	}
	if err := b.Context.Validate(); err != nil {
		return fmt.Errorf("benchmark %s: %w", b.Name, err)
	}
	if err := b.Document.Validate(); err != nil {
		return fmt.Errorf("benchmark %s: %w", b.Name, err)
	}
	return nil
}

// Corpus is a fixed benchmark set, ordered by name for stable reports.
type Corpus []BenchmarkDoc

// LoadCorpus reads every *.json benchmark file in a directory.
func LoadCorpus(dir string) (Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark directory %s: %w", dir, err)
	}

	var corpus Corpus
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read benchmark %s: %w", path, err)
		}

		var doc BenchmarkDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse benchmark %s: %w", path, err)
		}
		if doc.Name == "" {
			doc.Name = strings.TrimSuffix(entry.Name(), ".json")
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
		corpus = append(corpus, doc)
	}

	if len(corpus) == 0 {
		return nil, fmt.Errorf("no benchmark documents found in %s", dir)
	}
	sort.Slice(corpus, func(i, j int) bool { return corpus[i].Name < corpus[j].Name })
	return corpus, nil
}
