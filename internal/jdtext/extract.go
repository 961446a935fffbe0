// Package jdtext extracts plain text from job-description files. Postings
// saved from job boards are usually HTML; the scoring engine wants clean
// text. Fetching the pages in the first place is outside this module.
package jdtext

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespacePattern = regexp.MustCompile(`[ \t]+`)

// LoadFile reads a job-description file and returns its plain text,
// stripping HTML markup when present.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description %s: %w", path, err)
	}
	return Extract(string(data)), nil
}

// Extract returns the plain text of a job description. Non-HTML input is
// returned whitespace-normalized; HTML is parsed and reduced to visible
// text with scripts and styles removed.
func Extract(content string) string {
	if !looksLikeHTML(content) {
		return normalize(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// Unparsable markup; fall back to the raw text.
		return normalize(content)
	}

	doc.Find("script, style, noscript").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, p, li, td, div").Each(func(_ int, s *goquery.Selection) {
		// Only leaf-ish nodes: skip containers whose children were
		// already visited, to avoid duplicating text.
		if s.Children().Filter("h1, h2, h3, h4, p, li, td, div").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		// Markup carried no recognized blocks; take the document text.
		text = doc.Text()
	}
	return normalize(text)
}

func looksLikeHTML(content string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(content))
	return strings.HasPrefix(trimmed, "<!doctype") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed, "</div>") ||
		strings.Contains(trimmed, "</p>")
}

func normalize(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(whitespacePattern.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
