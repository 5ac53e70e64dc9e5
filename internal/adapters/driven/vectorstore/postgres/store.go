// Package postgres provides a pgvector-backed vector store. Similarity is
// computed by the database via the cosine distance operator, so search
// scales past what brute-force in-process scoring handles.
//
// Required extension: CREATE EXTENSION IF NOT EXISTS vector;
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/record"
	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTable is the examples table name unless overridden.
const DefaultTable = "domain_examples"

// exampleRecord is the persisted row. The vector column is sized for
// text-embedding-3-small (1536); other models need a matching migration.
type exampleRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Domain    string          `gorm:"not null;uniqueIndex:idx_domain_examples_key,priority:1;index"`
	Category  string          `gorm:"not null"`
	ExampleID string          `gorm:"not null;uniqueIndex:idx_domain_examples_key,priority:2"`
	Content   string          `gorm:"type:jsonb;not null"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

// Store is a Postgres vector store using pgvector.
type Store struct {
	db       *gorm.DB
	table    string
	embedder driven.EmbeddingService
}

// New connects to Postgres and migrates the examples table. DSN and
// embedder are required; table defaults to DefaultTable.
func New(dsn, table string, embedder driven.EmbeddingService) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres store requires a dsn", domain.ErrAdapterConfig)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: postgres store requires an embedding service", domain.ErrAdapterConfig)
	}
	if table == "" {
		table = DefaultTable
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	s := &Store{db: db, table: table, embedder: embedder}
	if err := db.Table(table).AutoMigrate(&exampleRecord{}); err != nil {
		return nil, fmt.Errorf("migrating %s: %w", table, err)
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Index embeds and upserts examples on the (domain, example_id) key.
// The upsert is a single statement per example, so readers never see a
// partially written record.
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

		row := exampleRecord{
			ID:        uuid.New(),
			Domain:    e.Domain,
			Category:  e.Category,
			ExampleID: e.ID,
			Content:   string(content),
			Embedding: pgvector.NewVector(vec),
		}

		err = s.db.WithContext(ctx).Table(s.table).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "domain"}, {Name: "example_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category", "content", "embedding",
			}),
		}).Create(&row).Error
		if err != nil {
			return indexed, fmt.Errorf("saving example %s/%s: %w", e.Domain, e.ID, err)
		}

		indexed++
	}
	return indexed, nil
}

// searchRow carries the scan target for similarity queries.
type searchRow struct {
	Domain     string
	Category   string
	Content    string
	Similarity float64
}

// Search ranks candidates by cosine distance in the database. pgvector's
// <=> operator returns cosine distance; similarity is 1 - distance. Equal
// distances keep the planner's scan order, which is stable for a fixed
// table state.
func (s *Store) Search(ctx context.Context, query, domainName, category string, limit int) ([]domain.ContrastExample, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	vec := pgvector.NewVector(queryVec)

	var conditions []string
	params := []any{vec}
	if domainName != "" {
		conditions = append(conditions, "domain = ?")
		params = append(params, domainName)
	}
	if category != "" {
		conditions = append(conditions, "category = ?")
		params = append(params, category)
	}

	sqlQuery := fmt.Sprintf("SELECT domain, category, content, 1 - (embedding <=> ?) AS similarity FROM %s", s.table)
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY embedding <=> ?"
	params = append(params, vec)
	if limit > 0 {
		sqlQuery += " LIMIT ?"
		params = append(params, limit)
	}

	var rows []searchRow
	if err := s.db.WithContext(ctx).Raw(sqlQuery, params...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying examples: %w", err)
	}

	results := make([]domain.ContrastExample, 0, len(rows))
	for _, row := range rows {
		example, err := record.Decode([]byte(row.Content), row.Domain, row.Category)
		if err != nil {
			return nil, fmt.Errorf("decoding example: %w", err)
		}
		example.Similarity = row.Similarity
		results = append(results, example)
	}
	return results, nil
}

// DeleteDomain removes all examples for a domain.
func (s *Store) DeleteDomain(ctx context.Context, domainName string) (int, error) {
	res := s.db.WithContext(ctx).Table(s.table).
		Where("domain = ?", domainName).
		Delete(&exampleRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("deleting domain %s: %w", domainName, res.Error)
	}
	return int(res.RowsAffected), nil
}

// Count returns the number of indexed examples, optionally per domain.
func (s *Store) Count(ctx context.Context, domainName string) (int, error) {
	var count int64
	query := s.db.WithContext(ctx).Table(s.table).Model(&exampleRecord{})
	if domainName != "" {
		query = query.Where("domain = ?", domainName)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting examples: %w", err)
	}
	return int(count), nil
}
