package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Principle is a universal rule that always applies within a domain.
// Principles are immutable once parsed and keep their document order.
type Principle struct {
	// Title is the section heading with any numeric prefix stripped.
	Title string

	// Explanation is the body text before the "why it matters" marker.
	Explanation string

	// WhyItMatters is the text following the marker phrase, if present.
	WhyItMatters string
}

// RubricLevel is one scoring level within a rubric.
// Levels are unique by score within their rubric.
type RubricLevel struct {
	Score    int
	Label    string
	Criteria []string
}

// Rubric is the evaluation framework for a specific task.
type Rubric struct {
	// ID is the stable key, usually the rubric filename stem.
	ID string

	// FileID is the filename stem the rubric was loaded from. It stays
	// a valid lookup key even when metadata overrides ID.
	FileID string

	// Name is the human-readable title.
	Name string

	// Description is the first paragraph after the title.
	Description string

	// Levels is sorted by score descending.
	Levels []RubricLevel

	// RedFlags are disqualifying patterns, in document order.
	RedFlags []string

	// EvaluationQuestions guide the reviewer, in document order.
	EvaluationQuestions []string
}

// Render produces a stable text form of the rubric for token measurement
// and prompt inclusion. Field order is fixed.
func (r *Rubric) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", r.Name, r.Description)
	for _, level := range r.Levels {
		fmt.Fprintf(&b, "\n### %d - %s\n", level.Score, level.Label)
		for _, c := range level.Criteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if len(r.RedFlags) > 0 {
		b.WriteString("\n## Red Flags\n")
		for _, f := range r.RedFlags {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	if len(r.EvaluationQuestions) > 0 {
		b.WriteString("\n## Evaluation Questions\n")
		for i, q := range r.EvaluationQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}
	return b.String()
}

// ContrastExample is a paired WEAK vs STRONG illustration of a pattern,
// annotated with reasons and a teaching point.
type ContrastExample struct {
	// ID is unique within a domain; (Domain, ID) is the natural key
	// for upsert and delete in a vector store.
	ID string

	Domain   string
	Category string
	Tags     []string

	WeakContent   string
	WeakReasons   []string
	StrongContent string
	StrongReasons []string

	TeachingPoint string
	WhenToApply   string

	// Embedding is populated only inside a vector store; parsing never
	// requires it.
	Embedding []float32

	// Similarity is populated only on search results, never persisted.
	Similarity float64
}

// EmbeddingText returns the deterministic serialization used to embed an
// example. The field order is fixed: domain, category, tags, weak, strong,
// teaching point, apply-when.
func (e *ContrastExample) EmbeddingText() string {
	parts := []string{
		"Domain: " + e.Domain,
		"Category: " + e.Category,
		"Tags: " + strings.Join(e.Tags, ", "),
		"WEAK: " + e.WeakContent,
		"STRONG: " + e.StrongContent,
		"Teaching: " + e.TeachingPoint,
		"Apply when: " + e.WhenToApply,
	}
	return strings.Join(parts, "\n")
}

// Render produces a stable text form of the example for token measurement.
func (e *ContrastExample) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## WEAK\n%s\n", e.WeakContent)
	for _, r := range e.WeakReasons {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	fmt.Fprintf(&b, "\n## STRONG\n%s\n", e.StrongContent)
	for _, r := range e.StrongReasons {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	if e.TeachingPoint != "" {
		fmt.Fprintf(&b, "\n## Teaching Point\n%s\n", e.TeachingPoint)
	}
	if e.WhenToApply != "" {
		fmt.Fprintf(&b, "\n## When to Apply\n%s\n", e.WhenToApply)
	}
	return b.String()
}

// Domain is a named knowledge collection rooted at a directory.
// Examples are never materialized here; they live in the vector store.
type Domain struct {
	Name string
	Path string

	// PrinciplesText is the raw principles file content, used verbatim
	// in assembled contexts. Principles is its parsed form.
	PrinciplesText string

	Principles []Principle
	Rubrics    []Rubric
}

// PrinciplesPath returns the location of the principles file.
func (d *Domain) PrinciplesPath() string {
	return filepath.Join(d.Path, "principles.md")
}

// RubricsPath returns the rubrics directory.
func (d *Domain) RubricsPath() string {
	return filepath.Join(d.Path, "rubrics")
}

// ExamplesPath returns the examples directory.
func (d *Domain) ExamplesPath() string {
	return filepath.Join(d.Path, "examples")
}

// FrameworksPath returns the deep-reference frameworks directory.
func (d *Domain) FrameworksPath() string {
	return filepath.Join(d.Path, "frameworks")
}

// AnalysisContext is the assembled bundle for one analysis task.
// It is created fresh per assembly call and never cached.
type AnalysisContext struct {
	// Principles is the raw tier-1 text.
	Principles string

	// Rubric is the task rubric, nil when no rubric matched.
	Rubric *Rubric

	// Examples are ordered by similarity descending.
	Examples []ContrastExample

	// TokenCount is the measured total. It may exceed the requested
	// budget: principles and rubric are never truncated and the example
	// count is sized from an estimate, not enforced as a cap.
	TokenCount int
}
