// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metadata keeps canonical publication metadata in SQLite.
// Implements: the keyed publication lookup used by the HTTP layer for
// optional enrichment, and the import that populates it from a corpus;
//
//	docs/ARCHITECTURE § Metadata Store.
//
// The similarity index never reads this store.
package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-recommender/internal/corpus"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// ErrNoDatabase is returned when a read-only store is opened on a path
// that does not exist.
var ErrNoDatabase = errors.New("metadata database not found")

// Store wraps the metadata SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Record is the metadata held for one publication.
type Record struct {
	ID       string             `json:"id" yaml:"id"`
	PMID     string             `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	Title    string             `json:"title" yaml:"title"`
	URL      string             `json:"url" yaml:"url"`
	Datasets []types.DatasetRef `json:"datasets" yaml:"datasets"`
}

// NewStore opens or creates the database at cfg.Path and creates the
// schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: cfg.Path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// OpenReadOnly opens an existing database for lookups only.
func OpenReadOnly(cfg types.StoreConfig) (*Store, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, cfg.Path)
		}
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+cfg.Path+"?mode=ro&_query_only=true")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &Store{db: db, path: cfg.Path}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			pmid TEXT,
			title TEXT NOT NULL,
			url TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS paper_datasets (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_id TEXT NOT NULL,
			dataset_id TEXT NOT NULL REFERENCES datasets(id),
			dataset_type TEXT NOT NULL DEFAULT '',
			dataset_url TEXT NOT NULL DEFAULT '',
			UNIQUE (paper_id, dataset_id, dataset_url)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_paper_datasets_paper_id ON paper_datasets(paper_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Papers   int
	Datasets int
	Links    int
}

// Import replaces the store contents with the publications and links of
// c in one transaction.
func (s *Store) Import(ctx context.Context, c *corpus.Corpus, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM paper_datasets`, `DELETE FROM datasets`, `DELETE FROM papers`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return summary, fmt.Errorf("clearing tables: %w", err)
		}
	}

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (id, pmid, title, url) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET pmid=excluded.pmid, title=excluded.title, url=excluded.url`)
	if err != nil {
		return summary, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	for _, p := range c.Publications() {
		if _, err := paperStmt.ExecContext(ctx, p.ID, p.PMID, p.Title, p.URL); err != nil {
			return summary, fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
		summary.Papers++
	}

	datasetStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO datasets (id, type) VALUES (?, ?) ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return summary, fmt.Errorf("preparing dataset insert: %w", err)
	}
	defer datasetStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO paper_datasets (paper_id, dataset_id, dataset_type, dataset_url)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing link insert: %w", err)
	}
	defer linkStmt.Close()

	for _, l := range c.Links() {
		res, err := datasetStmt.ExecContext(ctx, l.DatasetID, l.DatasetType)
		if err != nil {
			return summary, fmt.Errorf("inserting dataset %s: %w", l.DatasetID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			summary.Datasets++
		}
		if _, err := linkStmt.ExecContext(ctx, l.PaperID, l.DatasetID, l.DatasetType, l.DatasetURL); err != nil {
			return summary, fmt.Errorf("inserting link %s -> %s: %w", l.PaperID, l.DatasetID, err)
		}
		summary.Links++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "imported papers: %d, datasets: %d, links: %d\n",
		summary.Papers, summary.Datasets, summary.Links)
	return summary, nil
}

// Lookup returns the metadata of one publication. A missing publication
// is reported with ok == false and a nil error; err is non-nil only when
// the store itself fails.
func (s *Store) Lookup(ctx context.Context, id string) (Record, bool, error) {
	id = corpus.NormalizeID(id)

	var (
		rec  Record
		pmid sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, pmid, title, url FROM papers WHERE id = ?`, id,
	).Scan(&rec.ID, &pmid, &rec.Title, &rec.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("looking up paper %s: %w", id, err)
	}
	rec.PMID = pmid.String

	rec.Datasets, err = s.datasets(ctx, id)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *Store) datasets(ctx context.Context, paperID string) ([]types.DatasetRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dataset_id, dataset_type, dataset_url FROM paper_datasets
		 WHERE paper_id = ? ORDER BY seq`, paperID)
	if err != nil {
		return nil, fmt.Errorf("querying datasets of %s: %w", paperID, err)
	}
	defer rows.Close()

	links := []types.DatasetRef{}
	for rows.Next() {
		var l types.DatasetRef
		if err := rows.Scan(&l.DatasetID, &l.DatasetType, &l.DatasetURL); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Count returns the number of publications in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}
