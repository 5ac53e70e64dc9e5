package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driving"
	"github.com/praxis-labs/praxis-cli/internal/logger"
	"github.com/praxis-labs/praxis-cli/internal/parser"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService walks a domain's example files and keeps the vector
// store in sync with them.
type IndexService struct {
	domains driving.DomainService
	store   driven.VectorStore
}

// NewIndexService creates an index service.
func NewIndexService(domains driving.DomainService, store driven.VectorStore) *IndexService {
	return &IndexService{domains: domains, store: store}
}

// IndexDomain parses and indexes every markdown file under the domain's
// examples directory. Each file is indexed independently so one bad
// file never blocks the rest; failures are collected in the report.
func (s *IndexService) IndexDomain(ctx context.Context, name string) (domain.IndexReport, error) {
	defer logger.Timing("index domain", time.Now())

	report := domain.IndexReport{Failed: make(map[string]string)}

	dom, err := s.domains.Load(name)
	if err != nil {
		return report, err
	}

	root := dom.ExamplesPath()
	logger.Section("Indexing")
	logger.Debug("Domain: %s, examples: %s", name, root)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				// No examples directory is a valid, empty domain.
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = d.Name()
		}

		example, parseErr := s.parseFile(path, rel, name)
		if parseErr != nil {
			logger.Warn("Skipping %s: %v", rel, parseErr)
			report.Failed[rel] = parseErr.Error()
			return nil
		}

		if _, indexErr := s.store.Index(ctx, []domain.ContrastExample{example}); indexErr != nil {
			logger.Warn("Indexing %s failed: %v", rel, indexErr)
			report.Failed[rel] = indexErr.Error()
			return nil
		}
		report.Indexed++
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("walking examples for %s: %w", name, err)
	}

	logger.Info("Indexed %d examples, %d failed", report.Indexed, len(report.Failed))
	return report, nil
}

// parseFile reads one example file. The fallback ID is the relative
// path without the .md suffix, slash-separated on every platform, and
// the fallback category is the first path element, "" for root files.
func (s *IndexService) parseFile(path, rel, domainName string) (domain.ContrastExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ContrastExample{}, fmt.Errorf("reading example: %w", err)
	}

	fallbackID := strings.TrimSuffix(filepath.ToSlash(rel), ".md")

	example, err := parser.ParseExample(string(data), fallbackID)
	if err != nil {
		return domain.ContrastExample{}, err
	}
	if example.Domain == "" {
		example.Domain = domainName
	}
	if example.Category == "" {
		if dir, _, found := strings.Cut(fallbackID, "/"); found {
			example.Category = dir
		}
	}
	return example, nil
}

// Search retrieves the closest indexed examples for a query.
func (s *IndexService) Search(ctx context.Context, query, domainName, category string, limit int) ([]domain.ContrastExample, error) {
	defer logger.Timing("search examples", time.Now())
	return s.store.Search(ctx, query, domainName, category, limit)
}

// ClearDomain removes all indexed examples for a domain and returns the
// number removed.
func (s *IndexService) ClearDomain(ctx context.Context, name string) (int, error) {
	return s.store.DeleteDomain(ctx, name)
}

// Count reports indexed examples, for one domain or all when name is "".
func (s *IndexService) Count(ctx context.Context, name string) (int, error) {
	return s.store.Count(ctx, name)
}
