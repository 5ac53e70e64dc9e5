// Package sqlite provides a local file-based vector store backed by SQLite.
// Embeddings are stored as little-endian float32 blobs and similarity is
// computed in-process, so the store is fully portable with no native
// extensions.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/record"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/sqlite/migrations"
	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store.
type Store struct {
	db       *sql.DB
	path     string
	embedder driven.EmbeddingService
}

// New creates a SQLite store at the given database file, creating parent
// directories as needed. Path and embedder are required.
func New(path string, embedder driven.EmbeddingService) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: sqlite store requires a database path", domain.ErrAdapterConfig)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: sqlite store requires an embedding service", domain.ErrAdapterConfig)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL mode for concurrent readers during indexing.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path, embedder: embedder}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Index embeds and upserts examples. Each example is written in a single
// statement so a concurrent Search never observes a partial record.
func (s *Store) Index(ctx context.Context, examples []domain.ContrastExample) (int, error) {
	indexed := 0
	for i := range examples {
		e := examples[i]

		vec, err := s.embedder.Embed(ctx, e.EmbeddingText())
		if err != nil {
			return indexed, fmt.Errorf("embedding example %s/%s: %w", e.Domain, e.ID, err)
		}

		content, err := record.Encode(e)
		if err != nil {
			return indexed, fmt.Errorf("encoding example %s/%s: %w", e.Domain, e.ID, err)
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO domain_examples (domain, category, example_id, content, embedding)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(domain, example_id) DO UPDATE SET
				category = excluded.category,
				content = excluded.content,
				embedding = excluded.embedding
		`, e.Domain, e.Category, e.ID, string(content), record.EncodeVector(vec))
		if err != nil {
			return indexed, fmt.Errorf("saving example %s/%s: %w", e.Domain, e.ID, err)
		}

		indexed++
	}
	return indexed, nil
}

// Search embeds the query and ranks all candidate rows by cosine
// similarity. Rows are scanned in rowid order, so equal similarities
// keep insertion order.
func (s *Store) Search(ctx context.Context, query, domainName, category string, limit int) ([]domain.ContrastExample, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	sqlQuery := "SELECT domain, category, content, embedding FROM domain_examples"
	var conditions []string
	var params []any
	if domainName != "" {
		conditions = append(conditions, "domain = ?")
		params = append(params, domainName)
	}
	if category != "" {
		conditions = append(conditions, "category = ?")
		params = append(params, category)
	}
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, sqlQuery, params...)
	if err != nil {
		return nil, fmt.Errorf("querying examples: %w", err)
	}
	defer rows.Close()

	results := []domain.ContrastExample{}
	for rows.Next() {
		var rowDomain, rowCategory, content string
		var blob []byte
		if err := rows.Scan(&rowDomain, &rowCategory, &content, &blob); err != nil {
			return nil, fmt.Errorf("scanning example: %w", err)
		}

		example, err := record.Decode([]byte(content), rowDomain, rowCategory)
		if err != nil {
			return nil, fmt.Errorf("decoding example: %w", err)
		}
		example.Similarity = record.Cosine(queryVec, record.DecodeVector(blob))
		results = append(results, example)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating examples: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteDomain removes all examples for a domain.
func (s *Store) DeleteDomain(ctx context.Context, domainName string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM domain_examples WHERE domain = ?", domainName)
	if err != nil {
		return 0, fmt.Errorf("deleting domain %s: %w", domainName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	return int(n), nil
}

// Count returns the number of indexed examples, optionally per domain.
func (s *Store) Count(ctx context.Context, domainName string) (int, error) {
	var count int
	var err error
	if domainName == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM domain_examples").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM domain_examples WHERE domain = ?", domainName).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting examples: %w", err)
	}
	return count, nil
}
