package services

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/praxis-labs/praxis-cli/internal/logger"
)

// DomainWatcher invalidates cached domains when their files change on
// disk, so long-running processes pick up edits without a restart.
type DomainWatcher struct {
	watcher     *fsnotify.Watcher
	domains     *DomainService
	domainsPath string
	done        chan struct{}
}

// NewDomainWatcher creates a watcher over the domains directory and its
// subdirectories.
func NewDomainWatcher(domainsPath string, domains *DomainService) (*DomainWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &DomainWatcher{
		watcher:     watcher,
		domains:     domains,
		domainsPath: domainsPath,
		done:        make(chan struct{}),
	}

	if err := w.addRecursive(domainsPath); err != nil {
		watcher.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// addRecursive watches a directory tree. fsnotify does not recurse, so
// every subdirectory is registered individually.
func (w *DomainWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// run dispatches filesystem events until Close.
func (w *DomainWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// handle invalidates the domain owning the changed path. New
// directories are added to the watch set so later changes inside them
// are seen too.
func (w *DomainWatcher) handle(event fsnotify.Event) {
	rel, err := filepath.Rel(w.domainsPath, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}

	name, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	if name == "" || name == "." {
		return
	}

	logger.Debug("Change in domain %s: %s %s", name, event.Op, rel)
	w.domains.Invalidate(name)

	if event.Op.Has(fsnotify.Create) {
		// Best effort: the path may already be gone again.
		_ = w.addRecursive(event.Name)
	}
}

// Close stops the watcher.
func (w *DomainWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
