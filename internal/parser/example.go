package parser

import (
	"fmt"
	"strings"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// contrastSection holds the partially parsed WEAK or STRONG block.
type contrastSection struct {
	content   string
	reasons   []string
	whySeen   bool
	collected bool
}

// valid reports whether the section matched the expected structure:
// a content line, a "Why ..." sub-heading, and at least one reason.
func (s *contrastSection) valid() bool {
	return s.content != "" && s.whySeen && len(s.reasons) > 0
}

// ParseExample parses a contrast example file.
//
// The metadata block supplies id, domain, category and tags; a missing id
// falls back to the caller-supplied identifier, typically derived from the
// source location. WEAK and STRONG sections each expect a content line, a
// "Why it's weak:"/"Why it works:" sub-heading and a bulleted reasons list;
// a section that does not match keeps empty content and reasons rather than
// failing. Only a completely unparsable document returns an error.
func ParseExample(content, fallbackID string) (domain.ContrastExample, error) {
	meta, body := splitFrontmatter(content)

	example := domain.ContrastExample{
		ID:       metaString(meta, "id"),
		Domain:   metaString(meta, "domain"),
		Category: metaString(meta, "category"),
		Tags:     metaStringSlice(meta, "tags"),
	}
	if example.ID == "" {
		example.ID = fallbackID
	}

	if strings.TrimSpace(body) == "" {
		return example, fmt.Errorf("%w: document has no body", domain.ErrMalformedEntity)
	}

	var weak, strong contrastSection
	var current *contrastSection
	var paragraph *[]string
	var teaching, apply []string

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "### "):
			heading := strings.ToLower(strings.TrimSpace(trimmed[4:]))
			if current != nil && strings.HasPrefix(heading, "why") {
				current.whySeen = true
			}
			paragraph = nil

		case strings.HasPrefix(trimmed, "## "):
			heading := strings.ToLower(strings.TrimSpace(trimmed[3:]))
			current = nil
			paragraph = nil
			switch heading {
			case "weak":
				current = &weak
			case "strong":
				current = &strong
			case "teaching point":
				paragraph = &teaching
			case "when to apply":
				paragraph = &apply
			}

		case strings.HasPrefix(trimmed, "# "):
			// Pattern name heading; carries no fields.
			current = nil
			paragraph = nil

		default:
			switch {
			case paragraph != nil:
				if trimmed == "" {
					if len(*paragraph) > 0 {
						paragraph = nil
					}
				} else {
					*paragraph = append(*paragraph, trimmed)
				}
			case current != nil:
				if current.whySeen {
					if r, ok := stripBullet(trimmed); ok {
						current.reasons = append(current.reasons, r)
					}
				} else if trimmed != "" && !current.collected {
					current.content = strings.Trim(trimmed, `"`)
					current.collected = true
				}
			}
		}
	}

	if weak.valid() {
		example.WeakContent = weak.content
		example.WeakReasons = weak.reasons
	}
	if strong.valid() {
		example.StrongContent = strong.content
		example.StrongReasons = strong.reasons
	}
	example.TeachingPoint = strings.Join(teaching, "\n")
	example.WhenToApply = strings.Join(apply, "\n")

	return example, nil
}
