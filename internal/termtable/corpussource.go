// Package termtable wires the term-treatment core (internal/termtreat) into
// a running service: pulling corpus statistics from Postgres or a fallback
// file, building tabulated treatments, caching them in Redis, and reacting
// to Kafka build triggers.
package termtable

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bitfunnel-go/termtable/internal/termtreat"
	"github.com/bitfunnel-go/termtable/pkg/config"
	"github.com/bitfunnel-go/termtable/pkg/postgres"
	"github.com/bitfunnel-go/termtable/pkg/resilience"
)

// corpusSourceQuery selects the term corpus statistics in the frequency
// order LoadDocumentFrequencyTable requires: descending by frequency.
const corpusSourceQuery = `
SELECT hash, gram_size, stream_id, frequency
FROM %s
ORDER BY frequency DESC
`

// CorpusSource loads a termtreat.DocumentFrequencyTable from a corpus
// statistics store, preferring Postgres and falling back to a text file in
// the DocumentFrequencyTable format when the database is unavailable or the
// caller asks for the file directly.
type CorpusSource struct {
	db     *postgres.Client
	cfg    config.CorpusConfig
	logger *slog.Logger
}

// NewCorpusSource creates a CorpusSource. db may be nil if only the file
// fallback is in use.
func NewCorpusSource(db *postgres.Client, cfg config.CorpusConfig) *CorpusSource {
	return &CorpusSource{
		db:     db,
		cfg:    cfg,
		logger: slog.Default().With("component", "corpus-source"),
	}
}

// Load produces a DocumentFrequencyTable for the current corpus. It reads
// from Postgres, retrying transient failures, and falls back to the
// configured file path if no database client is set or the table name is
// empty.
func (s *CorpusSource) Load(ctx context.Context) (*termtreat.DocumentFrequencyTable, error) {
	if s.db == nil || s.cfg.Table == "" {
		return s.loadFromFile()
	}

	var table *termtreat.DocumentFrequencyTable
	retryCfg := resilience.RetryConfig{MaxAttempts: 3}
	err := resilience.Retry(ctx, "corpus-source.load", retryCfg, func() error {
		loaded, err := s.loadFromPostgres(ctx)
		if err != nil {
			return err
		}
		table = loaded
		return nil
	})
	if err != nil {
		if s.cfg.FilePath == "" {
			return nil, fmt.Errorf("loading corpus from postgres: %w", err)
		}
		s.logger.Warn("postgres corpus load failed, falling back to file", "error", err, "file_path", s.cfg.FilePath)
		return s.loadFromFile()
	}
	return table, nil
}

func (s *CorpusSource) loadFromPostgres(ctx context.Context) (*termtreat.DocumentFrequencyTable, error) {
	query := fmt.Sprintf(corpusSourceQuery, s.cfg.Table)
	rows, err := s.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.cfg.Table, err)
	}
	defer rows.Close()

	entries := make([]termtreat.DocumentFrequencyTableEntry, 0)
	for rows.Next() {
		var e termtreat.DocumentFrequencyTableEntry
		if err := rows.Scan(&e.Hash, &e.GramSize, &e.StreamID, &e.Frequency); err != nil {
			return nil, fmt.Errorf("scanning corpus row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}

	table, err := termtreat.NewDocumentFrequencyTable(entries)
	if err != nil {
		return nil, fmt.Errorf("assembling corpus table: %w", err)
	}
	s.logger.Info("corpus loaded from postgres", "table", s.cfg.Table, "terms", table.Len())
	return table, nil
}

func (s *CorpusSource) loadFromFile() (*termtreat.DocumentFrequencyTable, error) {
	if s.cfg.FilePath == "" {
		return nil, fmt.Errorf("no corpus file path configured")
	}
	f, err := os.Open(s.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file %s: %w", s.cfg.FilePath, err)
	}
	defer f.Close()

	table, err := termtreat.LoadDocumentFrequencyTable(f)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", s.cfg.FilePath, err)
	}
	s.logger.Info("corpus loaded from file", "path", s.cfg.FilePath, "terms", table.Len())
	return table, nil
}
