package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

const testPrinciples = `# Principles

## 1. Clarity first
Say the thing plainly.
Why this matters: readers skim.

## 2. Small steps
Ship narrow changes.

## 3. Evidence
Claims need data.
`

const testRubric = `# Code Review

Judges review depth.

### 5 - Excellent
- Finds root causes

### 3 - Adequate
- Notes surface issues

## Red Flags
- Rubber stamping

## Evaluation Questions
1. Did the review test the change?
`

const testExample = `---
category: architecture
tags: [layering]
---
# Layering

## WEAK
"God object controller"

### Why it's weak
- Cannot be tested in isolation

## STRONG
"Thin handlers over services"

### Why it works
- Each layer has one reason to change

## Teaching Point
Separate policy from plumbing.
`

// writeTestDomain builds a well-formed domain directory and returns the
// domains root.
func writeTestDomain(t *testing.T, root, name string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rubrics"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "examples", "architecture"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "frameworks"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "principles.md"), []byte(testPrinciples), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rubrics", "code-review.md"), []byte(testRubric), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "examples", "architecture", "layering.md"), []byte(testExample), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "frameworks", "solid.md"), []byte("# SOLID\n\nDeep reference text.\n"), 0o644))

	return root
}

// recordingStore is a vector store double that records calls and serves
// canned results.
type recordingStore struct {
	indexed      []domain.ContrastExample
	searchLimit  int
	searchQuery  string
	searchDomain string
	results      []domain.ContrastExample
	searchErr    error
	indexErr     error
	deleted      int
}

func (r *recordingStore) Index(_ context.Context, examples []domain.ContrastExample) (int, error) {
	if r.indexErr != nil {
		return 0, r.indexErr
	}
	r.indexed = append(r.indexed, examples...)
	return len(examples), nil
}

func (r *recordingStore) Search(_ context.Context, query, domainName, _ string, limit int) ([]domain.ContrastExample, error) {
	r.searchQuery = query
	r.searchDomain = domainName
	r.searchLimit = limit
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.results, nil
}

func (r *recordingStore) DeleteDomain(_ context.Context, _ string) (int, error) {
	return r.deleted, nil
}

func (r *recordingStore) Count(_ context.Context, _ string) (int, error) {
	return len(r.indexed), nil
}

func (r *recordingStore) Close() error { return nil }

// charTokenizer counts one token per byte, making budget maths exact in
// tests.
type charTokenizer struct{}

func (charTokenizer) Count(text string) int { return len(text) }
