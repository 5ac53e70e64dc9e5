package parser

import (
	"strings"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// whyMarkers are the case-insensitive phrases that split a principle body
// into explanation and why-it-matters.
var whyMarkers = []string{"why this matters", "why it matters", "importance"}

// ParsePrinciples parses a principles document into its ordered principles.
//
// The document has one top-level "#" title and one "##" section per
// principle. Section titles keep their text with any leading "<n>. " prefix
// stripped; sections whose title is empty after stripping are discarded.
// Output order equals section order.
func ParsePrinciples(content string) []domain.Principle {
	var principles []domain.Principle

	var title string
	var body []string
	inSection := false

	flush := func() {
		if !inSection {
			return
		}
		if title == "" {
			return
		}
		explanation, why := splitWhyItMatters(strings.Join(body, "\n"))
		principles = append(principles, domain.Principle{
			Title:        title,
			Explanation:  explanation,
			WhyItMatters: why,
		})
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## "):
			flush()
			inSection = true
			title = stripNumericPrefix(strings.TrimSpace(trimmed[3:]))
			body = body[:0]
		case strings.HasPrefix(trimmed, "# "):
			// Document title; also terminates any open section.
			flush()
			inSection = false
		default:
			if inSection {
				body = append(body, line)
			}
		}
	}
	flush()

	return principles
}

// splitWhyItMatters separates a section body at the first marker phrase.
// The why text extends to the next blank line or the end of the section.
// Without a marker the whole body is the explanation.
func splitWhyItMatters(body string) (explanation, why string) {
	body = strings.TrimSpace(body)
	lower := strings.ToLower(body)

	idx := -1
	markerLen := 0
	for _, m := range whyMarkers {
		if i := strings.Index(lower, m); i >= 0 && (idx == -1 || i < idx) {
			idx = i
			markerLen = len(m)
		}
	}
	if idx == -1 {
		return body, ""
	}

	rest := body[idx+markerLen:]
	rest = strings.TrimLeft(rest, ": \t\n")
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		rest = rest[:end]
	}

	return strings.TrimSpace(body[:idx]), strings.TrimSpace(rest)
}

// stripNumericPrefix removes a leading "<number>. " from a heading.
func stripNumericPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '.' {
		return s
	}
	return strings.TrimSpace(s[i+1:])
}
