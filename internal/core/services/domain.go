package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driving"
	"github.com/praxis-labs/praxis-cli/internal/logger"
	"github.com/praxis-labs/praxis-cli/internal/parser"
)

// Ensure DomainService implements the interface.
var _ driving.DomainService = (*DomainService)(nil)

// Validation thresholds below which a domain is flagged as thin.
const (
	minPrinciples = 3
	minExamples   = 10
)

// domainLoad tracks an in-flight load so concurrent callers for the
// same domain share one disk read.
type domainLoad struct {
	done chan struct{}
	dom  *domain.Domain
	err  error
}

// DomainService loads domains from disk and caches them. Principles and
// rubrics are parsed once per load; framework files are read on demand
// and never cached.
type DomainService struct {
	domainsPath string
	enabled     map[string]bool

	mu    sync.Mutex
	cache map[string]*domain.Domain
	loads map[string]*domainLoad
}

// NewDomainService creates a domain service rooted at domainsPath.
// A non-empty enabled list restricts which domains are visible.
func NewDomainService(domainsPath string, enabled []string) *DomainService {
	var enabledSet map[string]bool
	if len(enabled) > 0 {
		enabledSet = make(map[string]bool, len(enabled))
		for _, name := range enabled {
			enabledSet[name] = true
		}
	}
	return &DomainService{
		domainsPath: domainsPath,
		enabled:     enabledSet,
		cache:       make(map[string]*domain.Domain),
		loads:       make(map[string]*domainLoad),
	}
}

// visible reports whether the enabled filter admits the domain.
func (s *DomainService) visible(name string) bool {
	return s.enabled == nil || s.enabled[name]
}

// Load returns the cached domain, reading it from disk on first access.
// Concurrent first loads of the same domain are collapsed into one read.
// Failed loads are not cached; the next call retries.
func (s *DomainService) Load(name string) (*domain.Domain, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: invalid domain name %q", domain.ErrInvalidInput, name)
	}
	if !s.visible(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDomainNotFound, name)
	}

	s.mu.Lock()
	if dom, ok := s.cache[name]; ok {
		s.mu.Unlock()
		return dom, nil
	}
	if load, ok := s.loads[name]; ok {
		s.mu.Unlock()
		<-load.done
		return load.dom, load.err
	}

	load := &domainLoad{done: make(chan struct{})}
	s.loads[name] = load
	s.mu.Unlock()

	load.dom, load.err = s.loadFromDisk(name)

	s.mu.Lock()
	if load.err == nil {
		s.cache[name] = load.dom
	}
	delete(s.loads, name)
	s.mu.Unlock()
	close(load.done)

	return load.dom, load.err
}

// loadFromDisk reads and parses a domain directory.
func (s *DomainService) loadFromDisk(name string) (*domain.Domain, error) {
	path := filepath.Join(s.domainsPath, name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrDomainNotFound, name)
	}

	dom := &domain.Domain{Name: name, Path: path}
	logger.Debug("Loading domain %s from %s", name, path)

	if data, err := os.ReadFile(dom.PrinciplesPath()); err == nil {
		dom.PrinciplesText = string(data)
		dom.Principles = parser.ParsePrinciples(dom.PrinciplesText)
	}

	rubrics, err := s.loadRubrics(dom)
	if err != nil {
		return nil, err
	}
	dom.Rubrics = rubrics

	logger.Debug("Loaded domain %s: %d principles, %d rubrics",
		name, len(dom.Principles), len(dom.Rubrics))
	return dom, nil
}

// loadRubrics parses every markdown file in the rubrics directory,
// sorted by filename for a stable order.
func (s *DomainService) loadRubrics(dom *domain.Domain) ([]domain.Rubric, error) {
	entries, err := os.ReadDir(dom.RubricsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rubrics for %s: %w", dom.Name, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	rubrics := make([]domain.Rubric, 0, len(names))
	for _, fileName := range names {
		data, err := os.ReadFile(filepath.Join(dom.RubricsPath(), fileName))
		if err != nil {
			return nil, fmt.Errorf("reading rubric %s: %w", fileName, err)
		}
		id := strings.TrimSuffix(fileName, ".md")
		rubrics = append(rubrics, parser.ParseRubric(string(data), id))
	}
	return rubrics, nil
}

// Principles returns the raw tier-1 principles text, "" when the domain
// has no principles file.
func (s *DomainService) Principles(name string) (string, error) {
	dom, err := s.Load(name)
	if err != nil {
		return "", err
	}
	return dom.PrinciplesText, nil
}

// Rubric returns the rubric matching a task. Matching tries the exact
// rubric ID, then the filename stem, then normalized forms of both
// where spaces and underscores become hyphens and case is ignored. It
// returns nil when nothing matches; a missing rubric is not an error.
func (s *DomainService) Rubric(name, task string) (*domain.Rubric, error) {
	dom, err := s.Load(name)
	if err != nil {
		return nil, err
	}

	for i := range dom.Rubrics {
		if dom.Rubrics[i].ID == task || dom.Rubrics[i].FileID == task {
			return &dom.Rubrics[i], nil
		}
	}

	normalized := normalizeRubricKey(task)
	for i := range dom.Rubrics {
		if normalizeRubricKey(dom.Rubrics[i].ID) == normalized ||
			normalizeRubricKey(dom.Rubrics[i].FileID) == normalized {
			return &dom.Rubrics[i], nil
		}
	}
	return nil, nil
}

// normalizeRubricKey lowercases and maps separator characters to hyphens
// so "Code Review" matches a code-review.md rubric.
func normalizeRubricKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// Framework reads a deep-reference framework file on demand. The second
// return value reports whether the framework exists. Framework text is
// never cached; these files are large and rarely used.
func (s *DomainService) Framework(name, frameworkID string) (string, bool, error) {
	dom, err := s.Load(name)
	if err != nil {
		return "", false, err
	}
	if frameworkID == "" || frameworkID != filepath.Base(frameworkID) {
		return "", false, fmt.Errorf("%w: invalid framework id %q", domain.ErrInvalidInput, frameworkID)
	}

	path := filepath.Join(dom.FrameworksPath(), frameworkID+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading framework %s: %w", frameworkID, err)
	}
	return string(data), true, nil
}

// Validate reports a domain's structural health. A missing principles
// file is a blocking issue; thin principle or example counts are
// warnings only.
func (s *DomainService) Validate(name string) (domain.ValidationResult, error) {
	dom, err := s.Load(name)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	result := domain.ValidationResult{Valid: true}

	switch {
	case dom.PrinciplesText == "":
		result.Valid = false
		result.Issues = append(result.Issues, "missing principles.md")
	case len(dom.Principles) == 0:
		result.Warnings = append(result.Warnings, "principles.md exists but no principles were parsed")
	case len(dom.Principles) < minPrinciples:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("only %d principles (recommended at least %d)", len(dom.Principles), minPrinciples))
	}

	if info, err := os.Stat(dom.RubricsPath()); err != nil || !info.IsDir() {
		result.Warnings = append(result.Warnings, "no rubrics directory")
	} else if len(dom.Rubrics) == 0 {
		result.Warnings = append(result.Warnings, "no rubrics found")
	}

	exampleCount := 0
	if info, err := os.Stat(dom.ExamplesPath()); err != nil || !info.IsDir() {
		result.Warnings = append(result.Warnings, "no examples directory")
	} else {
		_ = filepath.WalkDir(dom.ExamplesPath(), func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(path, ".md") {
				exampleCount++
			}
			return nil
		})
		if exampleCount < minExamples {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("only %d examples (recommended at least %d)", exampleCount, minExamples))
		}
	}

	result.Stats = domain.ValidationStats{
		Principles: len(dom.Principles),
		Rubrics:    len(dom.Rubrics),
		Examples:   exampleCount,
	}

	return result, nil
}

// ListDomains returns the visible domain names in sorted order. Hidden
// directories are skipped.
func (s *DomainService) ListDomains() ([]string, error) {
	entries, err := os.ReadDir(s.domainsPath)
	if err != nil {
		return nil, fmt.Errorf("reading domains directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !s.visible(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops a domain from the cache so the next access re-reads
// its files.
func (s *DomainService) Invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

// Reload invalidates and loads the domain eagerly.
func (s *DomainService) Reload(name string) (*domain.Domain, error) {
	s.Invalidate(name)
	return s.Load(name)
}
