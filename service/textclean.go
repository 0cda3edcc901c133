package service

import (
	"regexp"
	"strings"

	"legalease-backend/models"
)

var (
	pageBoilerplateRe = regexp.MustCompile(`Page \d+ of \d+`)
	solitaryNumberRe  = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*\r?$`)
	horizontalSpaceRe = regexp.MustCompile(`[ \t\r\f]+`)
	multiNewlineRe    = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// SectionHeaderPatterns is the ordered table of legal-document header
// patterns used by DetectSections. The table is data, not logic: extend it
// per jurisdiction or language without touching the detection algorithm.
// The all-caps pattern is deliberately case-sensitive.
var SectionHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:ARTICLE|SECTION|CLAUSE)\s+[IVX\d]+\.?\s*[-:]?\s*\S`),
	regexp.MustCompile(`^\d+\.(?:\d+\.?)*\s+\S`),
	regexp.MustCompile(`^[A-Z][A-Z\s]+$`),
	regexp.MustCompile(`(?i)^(?:WHEREAS|NOW THEREFORE|IN WITNESS WHEREOF)`),
	regexp.MustCompile(`(?i)^(?:Parties?|Definitions?|Terms?|Conditions?|Obligations?|Rights?|Remedies|Termination|Signatures?)`),
}

// Clean normalizes raw extracted page text: strips "Page N of M" boilerplate
// and solitary page-number lines, collapses runs of horizontal whitespace to
// a single space, and collapses 3+ consecutive newlines to 2. Newlines are
// otherwise preserved so section detection keeps the line structure.
func Clean(text string) string {
	text = pageBoilerplateRe.ReplaceAllString(text, "")
	text = solitaryNumberRe.ReplaceAllString(text, "")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func isSectionHeader(line string) bool {
	for _, pattern := range SectionHeaderPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// DetectSections partitions cleaned page text into labeled sections. A line
// matching any header pattern closes the accumulated section and opens a new
// one titled with that line. Text before the first header, or text with no
// header at all, is titled "Document Content". Line numbers are 1-based into
// the page's line sequence and contiguous across sections.
func DetectSections(text string) []models.Section {
	lines := strings.Split(text, "\n")

	var sections []models.Section
	currentTitle := ""
	var currentBody []string

	closeSection := func(endLine int) {
		if currentTitle == "" && len(currentBody) == 0 {
			return
		}
		title := currentTitle
		if title == "" {
			title = "Document Content"
		}
		startLine := 1
		if len(sections) > 0 {
			startLine = sections[len(sections)-1].EndLine + 1
		}
		sections = append(sections, models.Section{
			Title:     title,
			Text:      strings.Join(currentBody, "\n"),
			StartLine: startLine,
			EndLine:   endLine,
		})
	}

	for lineNum, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isSectionHeader(line) {
			closeSection(lineNum)
			currentTitle = line
			currentBody = nil
			continue
		}

		currentBody = append(currentBody, line)
	}
	closeSection(len(lines))

	if len(sections) == 0 {
		sections = append(sections, models.Section{
			Title:     "Document Content",
			Text:      text,
			StartLine: 1,
			EndLine:   len(lines),
		})
	}

	return sections
}
