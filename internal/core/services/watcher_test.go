package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDomainWatcher_InvalidatesOnChange(t *testing.T) {
	root := writeTestDomain(t, t.TempDir(), "code-review")
	domains := NewDomainService(root, nil)

	first, err := domains.Load("code-review")
	require.NoError(t, err)

	watcher, err := NewDomainWatcher(root, domains)
	require.NoError(t, err)
	defer watcher.Close()

	path := filepath.Join(root, "code-review", "principles.md")
	require.NoError(t, os.WriteFile(path, []byte("## 1. Rewritten\nFresh text.\n"), 0o644))

	require.Eventually(t, func() bool {
		dom, err := domains.Load("code-review")
		return err == nil && dom.PrinciplesText != first.PrinciplesText
	}, 5*time.Second, 20*time.Millisecond, "cache was not invalidated after file change")
}
