package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// rubricSection tracks which named list the state machine is filling.
type rubricSection int

const (
	rubricNone rubricSection = iota
	rubricLevel
	rubricRedFlags
	rubricQuestions
)

// ParseRubric parses a rubric file.
//
// An optional leading metadata block may override the id. The name comes
// from the first "#" heading (stripping an optional "Rubric:" prefix),
// defaulting to the caller-supplied id. Scoring levels are "### <score> -
// <label>" headings followed by bullet lists, re-sorted descending by score
// regardless of file order. Red flags and evaluation questions come from
// their named sections; any missing section yields an empty slice.
func ParseRubric(content, rubricID string) domain.Rubric {
	meta, body := splitFrontmatter(content)
	fileID := rubricID
	if id := metaString(meta, "id"); id != "" {
		rubricID = id
	}

	r := domain.Rubric{ID: rubricID, FileID: fileID, Name: rubricID}

	section := rubricNone
	var level *domain.RubricLevel
	titleSeen := false
	descDone := false
	var desc []string

	closeLevel := func() {
		if level != nil {
			r.Levels = append(r.Levels, *level)
			level = nil
		}
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "### "):
			closeLevel()
			section = rubricNone
			if score, label, ok := parseLevelHeading(trimmed[4:]); ok {
				level = &domain.RubricLevel{Score: score, Label: label}
				section = rubricLevel
			}

		case strings.HasPrefix(trimmed, "## "):
			closeLevel()
			heading := strings.ToLower(strings.TrimSpace(trimmed[3:]))
			switch {
			case heading == "red flags" || heading == "red flag":
				section = rubricRedFlags
			case heading == "evaluation questions" || heading == "evaluation question":
				section = rubricQuestions
			default:
				section = rubricNone
			}

		case strings.HasPrefix(trimmed, "# "):
			closeLevel()
			section = rubricNone
			if !titleSeen {
				titleSeen = true
				name := strings.TrimSpace(trimmed[2:])
				name = strings.TrimSpace(strings.TrimPrefix(name, "Rubric:"))
				if name != "" {
					r.Name = name
				}
			}

		default:
			switch section {
			case rubricLevel:
				if c, ok := stripBullet(trimmed); ok {
					level.Criteria = append(level.Criteria, c)
				}
			case rubricRedFlags:
				if f, ok := stripBullet(trimmed); ok {
					r.RedFlags = append(r.RedFlags, f)
				}
			case rubricQuestions:
				if q, ok := stripNumbering(trimmed); ok {
					r.EvaluationQuestions = append(r.EvaluationQuestions, q)
				}
			case rubricNone:
				// First paragraph after the title is the description.
				if titleSeen && !descDone {
					if trimmed == "" {
						if len(desc) > 0 {
							descDone = true
						}
					} else {
						desc = append(desc, trimmed)
					}
				}
			}
		}
	}
	closeLevel()

	r.Description = strings.Join(desc, "\n")

	// Mandatory normalization: levels sort descending by score no matter
	// the file order. Stable so equal scores keep document order.
	sort.SliceStable(r.Levels, func(i, j int) bool {
		return r.Levels[i].Score > r.Levels[j].Score
	})

	return r
}

// parseLevelHeading matches "<integer> - <label>" (hyphen or en dash).
func parseLevelHeading(s string) (int, string, bool) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{" - ", " – ", "- ", "– "} {
		if i := strings.Index(s, sep); i > 0 {
			score, err := strconv.Atoi(strings.TrimSpace(s[:i]))
			if err != nil {
				return 0, "", false
			}
			label := strings.TrimSpace(s[i+len(sep):])
			if label == "" {
				return 0, "", false
			}
			return score, label, true
		}
	}
	return 0, "", false
}

// stripBullet removes a leading "-" or "*" list marker.
func stripBullet(s string) (string, bool) {
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") {
		return strings.TrimSpace(s[2:]), true
	}
	return "", false
}

// stripNumbering removes a leading "<n>. " from a numbered list item.
func stripNumbering(s string) (string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '.' {
		return "", false
	}
	return strings.TrimSpace(s[i+1:]), true
}
