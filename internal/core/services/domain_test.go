package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

func TestLoad_ParsesDomain(t *testing.T) {
	root := writeTestDomain(t, t.TempDir(), "code-review")
	svc := NewDomainService(root, nil)

	dom, err := svc.Load("code-review")
	require.NoError(t, err)

	assert.Equal(t, "code-review", dom.Name)
	assert.NotEmpty(t, dom.PrinciplesText)
	assert.Len(t, dom.Principles, 3)
	assert.Equal(t, "Clarity first", dom.Principles[0].Title)

	require.Len(t, dom.Rubrics, 1)
	assert.Equal(t, "code-review", dom.Rubrics[0].ID)
	assert.Equal(t, "Code Review", dom.Rubrics[0].Name)
}

func TestLoad_UnknownDomain(t *testing.T) {
	svc := NewDomainService(t.TempDir(), nil)

	_, err := svc.Load("missing")
	assert.True(t, errors.Is(err, domain.ErrDomainNotFound))
}

func TestLoad_RejectsPathTraversal(t *testing.T) {
	svc := NewDomainService(t.TempDir(), nil)

	for _, name := range []string{"", "../outside", "a/b"} {
		_, err := svc.Load(name)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "name %q", name)
	}
}

func TestLoad_CachesUntilInvalidated(t *testing.T) {
	root := writeTestDomain(t, t.TempDir(), "code-review")
	svc := NewDomainService(root, nil)

	first, err := svc.Load("code-review")
	require.NoError(t, err)

	// Change the file behind the cache's back.
	path := filepath.Join(root, "code-review", "principles.md")
	require.NoError(t, os.WriteFile(path, []byte("## 1. Changed\nNew text.\n"), 0o644))

	cached, err := svc.Load("code-review")
	require.NoError(t, err)
	assert.Equal(t, first.PrinciplesText, cached.PrinciplesText)

	reloaded, err := svc.Reload("code-review")
	require.NoError(t, err)
	assert.NotEqual(t, first.PrinciplesText, reloaded.PrinciplesText)
	assert.Equal(t, "Changed", reloaded.Principles[0].Title)
}

func TestRubric_Matching(t *testing.T) {
	root := writeTestDomain(t, t.TempDir(), "code-review")
	svc := NewDomainService(root, nil)

	tests := []struct {
		name  string
		task  string
		found bool
	}{
		{"exact id", "code-review", true},
		{"spaces and case", "Code Review", true},
		{"underscores", "code_review", true},
		{"no match", "security-audit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rubric, err := svc.Rubric("code-review", tt.task)
			require.NoError(t, err)
			if tt.found {
				require.NotNil(t, rubric)
				assert.Equal(t, "code-review", rubric.ID)
			} else {
				assert.Nil(t, rubric)
			}
		})
	}
}

func TestRubric_FilenameMatchesDespiteIDOverride(t *testing.T) {
	root := writeTestDomain(t, t.TempDir(), "code-review")
	overridden := "---\nid: deep-review\n---\n# Security Audit\n\nChecks threat coverage.\n"
	path := filepath.Join(root, "code-review", "rubrics", "security-audit.md")
	require.NoError(t, os.WriteFile(path, []byte(overridden), 0o644))
	svc := NewDomainService(root, nil)

	byID, err := svc.Rubric("code-review", "deep-review")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "deep-review", byID.ID)

	// The filename stem keeps working as a key after the override.
	byFile, err := svc.Rubric("code-review", "security-audit")
	require.NoError(t, err)
	require.NotNil(t, byFile)
	assert.Equal(t, "deep-review", byFile.ID)

	byNormalizedFile, err := svc.Rubric("code-review", "Security Audit")
	require.NoError(t, err)
	require.NotNil(t, byNormalizedFile)
	assert.Equal(t, "deep-review", byNormalizedFile.ID)
}

func TestFramework_OnDemand(t *testing.T) {
	root := writeTestDomain(t, t.TempDir(), "code-review")
	svc := NewDomainService(root, nil)

	text, ok, err := svc.Framework("code-review", "solid")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, text, "SOLID")

	_, ok, err = svc.Framework("code-review", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.Framework("code-review", "../principles")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidate(t *testing.T) {
	t.Run("thin domain warns", func(t *testing.T) {
		root := writeTestDomain(t, t.TempDir(), "code-review")
		svc := NewDomainService(root, nil)

		result, err := svc.Validate("code-review")
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Issues)
		assert.Equal(t, 3, result.Stats.Principles)
		assert.Equal(t, 1, result.Stats.Examples)
		// One example is well under the recommended minimum.
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "examples")
	})

	t.Run("missing principles blocks", func(t *testing.T) {
		root := writeTestDomain(t, t.TempDir(), "code-review")
		require.NoError(t, os.Remove(filepath.Join(root, "code-review", "principles.md")))
		svc := NewDomainService(root, nil)

		result, err := svc.Validate("code-review")
		require.NoError(t, err)

		assert.False(t, result.Valid)
		require.Len(t, result.Issues, 1)
		assert.Contains(t, result.Issues[0], "principles.md")
		// The missing file is already an issue; no count warning on top.
		for _, w := range result.Warnings {
			assert.NotContains(t, w, "principles")
		}
	})

	t.Run("sparse domain gets structural warnings", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "sparse")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		// Prose only, no "## " sections to parse.
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "principles.md"), []byte("Just some prose.\n"), 0o644))
		svc := NewDomainService(root, nil)

		result, err := svc.Validate("sparse")
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Issues)
		assert.Contains(t, result.Warnings, "principles.md exists but no principles were parsed")
		assert.Contains(t, result.Warnings, "no rubrics directory")
		assert.Contains(t, result.Warnings, "no examples directory")
		for _, w := range result.Warnings {
			assert.NotContains(t, w, "only 0")
		}
	})

	t.Run("empty rubrics directory warns", func(t *testing.T) {
		root := writeTestDomain(t, t.TempDir(), "code-review")
		require.NoError(t, os.Remove(filepath.Join(root, "code-review", "rubrics", "code-review.md")))
		svc := NewDomainService(root, nil)

		result, err := svc.Validate("code-review")
		require.NoError(t, err)
		assert.Contains(t, result.Warnings, "no rubrics found")
	})
}

func TestListDomains(t *testing.T) {
	root := t.TempDir()
	writeTestDomain(t, root, "writing")
	writeTestDomain(t, root, "code-review")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0o755))

	t.Run("sorted and skips hidden", func(t *testing.T) {
		svc := NewDomainService(root, nil)
		names, err := svc.ListDomains()
		require.NoError(t, err)
		assert.Equal(t, []string{"code-review", "writing"}, names)
	})

	t.Run("enabled filter", func(t *testing.T) {
		svc := NewDomainService(root, []string{"writing"})
		names, err := svc.ListDomains()
		require.NoError(t, err)
		assert.Equal(t, []string{"writing"}, names)

		_, err = svc.Load("code-review")
		assert.True(t, errors.Is(err, domain.ErrDomainNotFound))
	})
}
