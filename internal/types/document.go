// Package types defines the shared data structures exchanged between the
// scoring engine, the matcher, and external callers.
package types

import (
	"fmt"
	"strings"
	"time"
)

// SourceFormat identifies the binary format the document was extracted from.
type SourceFormat string

// Supported source formats.
const (
	FormatDOCX SourceFormat = "docx"
	FormatPDF  SourceFormat = "pdf"
)

// Present is the sentinel end date for a role the candidate still holds.
const Present = "present"

// dateLayouts are the date formats tolerated on experience and education
// entries, tried in order.
var dateLayouts = []string{"2006-01", "2006-01-02", "Jan 2006", "January 2006", "01/2006", "2006"}

// Contact holds the candidate's contact fields. Empty string means the field
// was not found by the ingestion layer.
type Contact struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ProfileLink string `json:"profile_link,omitempty"`
}

// ExperienceEntry is one work-experience block with its bullet lines.
type ExperienceEntry struct {
	Company   string   `json:"company"`
	Title     string   `json:"title"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"` // a date or "present"
	Bullets   []string `json:"bullets"`
}

// EducationEntry is one education block.
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// LayoutMetadata carries structural facts about the source document that the
// ingestion layer observed during extraction.
type LayoutMetadata struct {
	PageCount    int          `json:"page_count"`
	WordCount    int          `json:"word_count"`
	HasPhoto     bool         `json:"has_photo"`
	SourceFormat SourceFormat `json:"source_format"`

	// ATS extraction hazards detected in the source file.
	HasTables        bool     `json:"has_tables,omitempty"`
	HasTextBoxes     bool     `json:"has_text_boxes,omitempty"`
	HasHeaderFooter  bool     `json:"has_header_footer,omitempty"`
	HasImages        bool     `json:"has_images,omitempty"`
	NonStandardFonts []string `json:"non_standard_fonts,omitempty"`

	// SectionWordCounts maps section name (summary, experience, education,
	// skills) to its word count, when the ingestion layer located sections.
	SectionWordCounts map[string]int `json:"section_word_counts,omitempty"`
}

// NormalizedDocument is the in-memory representation of a parsed resume.
// It is owned by the caller and read-only to the scoring engine.
type NormalizedDocument struct {
	Contact    Contact           `json:"contact"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Layout     LayoutMetadata    `json:"layout_metadata"`

	// Summary is the professional summary section text, if present.
	Summary string `json:"summary,omitempty"`
}

// Validate checks structural sanity of the document. Unparsable dates are
// tolerated (scorers treat them as neutral); only impossible shapes are
// rejected.
func (d *NormalizedDocument) Validate() error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}
	if d.Layout.PageCount < 0 {
		return fmt.Errorf("page_count must be non-negative, got %d", d.Layout.PageCount)
	}
	if d.Layout.WordCount < 0 {
		return fmt.Errorf("word_count must be non-negative, got %d", d.Layout.WordCount)
	}
	if d.Layout.SourceFormat != "" && d.Layout.SourceFormat != FormatDOCX && d.Layout.SourceFormat != FormatPDF {
		return fmt.Errorf("unknown source format %q", d.Layout.SourceFormat)
	}
	for i, exp := range d.Experience {
		start, okStart := ParseDate(exp.StartDate)
		end, okEnd := ParseDate(exp.EndDate)
		if okStart && okEnd && end.Before(start) {
			return fmt.Errorf("experience[%d] (%s): end date %s before start date %s",
				i, exp.Company, exp.EndDate, exp.StartDate)
		}
	}
	return nil
}

// FullText concatenates all searchable text of the document: summary, titles,
// companies, bullets, education and skills. Keyword matching runs against
// this text.
func (d *NormalizedDocument) FullText() string {
	var sb strings.Builder
	if d.Summary != "" {
		sb.WriteString(d.Summary)
		sb.WriteString("\n")
	}
	for _, exp := range d.Experience {
		sb.WriteString(exp.Title)
		sb.WriteString(" ")
		sb.WriteString(exp.Company)
		sb.WriteString("\n")
		for _, bullet := range exp.Bullets {
			sb.WriteString(bullet)
			sb.WriteString("\n")
		}
	}
	for _, edu := range d.Education {
		sb.WriteString(edu.Degree)
		sb.WriteString(" ")
		sb.WriteString(edu.Institution)
		sb.WriteString("\n")
	}
	if len(d.Skills) > 0 {
		sb.WriteString(strings.Join(d.Skills, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// AllBullets returns every bullet line across all experience entries, in
// document order.
func (d *NormalizedDocument) AllBullets() []string {
	var bullets []string
	for _, exp := range d.Experience {
		bullets = append(bullets, exp.Bullets...)
	}
	return bullets
}

// ParseDate parses an experience/education date string, trying each tolerated
// layout. Returns false for empty, "present", or unparsable input; callers
// must treat false as "unknown", never as an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Present) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EndOrNow resolves an entry's end date: "present" and empty resolve to now.
// The second return reports whether the value was parseable at all.
func EndOrNow(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Present) {
		return now, true
	}
	return ParseDate(s)
}
