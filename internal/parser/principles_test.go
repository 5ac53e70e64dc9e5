package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const principlesDoc = `# Core Principles: Copywriting

## 1. Clarity Beats Cleverness
Readers skim. A clever line that needs a second read loses them.

Why this matters: confusion is the single biggest conversion killer.

## 2. Specificity Sells
Concrete numbers and named outcomes beat abstract claims.

Importance: specifics are what skeptical buyers can verify.

## 3. One Idea Per Message
Every added idea halves the impact of the others.
`

func TestParsePrinciples_CountAndOrder(t *testing.T) {
	principles := ParsePrinciples(principlesDoc)

	require.Len(t, principles, 3)
	assert.Equal(t, "Clarity Beats Cleverness", principles[0].Title)
	assert.Equal(t, "Specificity Sells", principles[1].Title)
	assert.Equal(t, "One Idea Per Message", principles[2].Title)
}

func TestParsePrinciples_NumericPrefixStripped(t *testing.T) {
	principles := ParsePrinciples("## 12. Deep Numbering\nBody text.\n")

	require.Len(t, principles, 1)
	assert.Equal(t, "Deep Numbering", principles[0].Title)
}

func TestParsePrinciples_WhyMarkerSplit(t *testing.T) {
	principles := ParsePrinciples(principlesDoc)
	require.Len(t, principles, 3)

	assert.Equal(t, "Readers skim. A clever line that needs a second read loses them.",
		principles[0].Explanation)
	assert.Equal(t, "confusion is the single biggest conversion killer.",
		principles[0].WhyItMatters)

	// "Importance" is an accepted marker too.
	assert.Equal(t, "specifics are what skeptical buyers can verify.",
		principles[1].WhyItMatters)
}

func TestParsePrinciples_NoMarker(t *testing.T) {
	principles := ParsePrinciples(principlesDoc)
	require.Len(t, principles, 3)

	assert.Equal(t, "Every added idea halves the impact of the others.",
		principles[2].Explanation)
	assert.Empty(t, principles[2].WhyItMatters)
}

func TestParsePrinciples_WhyStopsAtBlankLine(t *testing.T) {
	doc := "## Focus\nBody.\n\nWhy it matters: the reason.\n\nTrailing paragraph ignored by the why field.\n"

	principles := ParsePrinciples(doc)

	require.Len(t, principles, 1)
	assert.Equal(t, "the reason.", principles[0].WhyItMatters)
}

func TestParsePrinciples_EmptyTitleDiscarded(t *testing.T) {
	doc := "# Title\n\n## 1.\nBody without a usable title.\n\n## Kept\nBody.\n"

	principles := ParsePrinciples(doc)

	require.Len(t, principles, 1)
	assert.Equal(t, "Kept", principles[0].Title)
}

func TestParsePrinciples_EmptyDocument(t *testing.T) {
	assert.Empty(t, ParsePrinciples(""))
	assert.Empty(t, ParsePrinciples("# Only A Title\n\nNo sections here.\n"))
}

func TestParsePrinciples_MarkerCaseInsensitive(t *testing.T) {
	doc := "## Tone\nKeep it plain.\n\nWHY THIS MATTERS: jargon excludes readers.\n"

	principles := ParsePrinciples(doc)

	require.Len(t, principles, 1)
	assert.Equal(t, "jargon excludes readers.", principles[0].WhyItMatters)
}
