// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives completed review reports in a local SQLite
// database so they can be listed and re-read later. The archive is
// audit metadata: its timestamps never feed back into scoring.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/review-engine/pkg/types"
)

const dbFile = "reviews.db"

// Store manages the review archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the archive database under cfg.DataDir and
// ensures the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "results"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS reviews (
		paper_id TEXT PRIMARY KEY,
		recommendation TEXT NOT NULL,
		overall_quality TEXT NOT NULL,
		average_score REAL NOT NULL,
		issue_count INTEGER NOT NULL,
		report TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Put archives a report, replacing any previous archive entry for the
// same paper.
func (s *Store) Put(ctx context.Context, rpt types.Report) error {
	data, err := json.Marshal(rpt)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reviews (paper_id, recommendation, overall_quality, average_score, issue_count, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(paper_id) DO UPDATE SET
			recommendation = excluded.recommendation,
			overall_quality = excluded.overall_quality,
			average_score = excluded.average_score,
			issue_count = excluded.issue_count,
			report = excluded.report,
			created_at = excluded.created_at`,
		rpt.PaperID,
		string(rpt.OverallRecommendation),
		string(rpt.QualityAssessment.OverallQuality),
		rpt.QualityAssessment.AverageScore,
		rpt.Critique.IssueCount,
		string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("archiving review %s: %w", rpt.PaperID, err)
	}
	return nil
}

// Get returns the archived report for a paper id.
func (s *Store) Get(ctx context.Context, paperID string) (types.Report, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM reviews WHERE paper_id = ?`, paperID).Scan(&data)
	if err == sql.ErrNoRows {
		return types.Report{}, fmt.Errorf("no archived review for %s", paperID)
	}
	if err != nil {
		return types.Report{}, fmt.Errorf("reading review %s: %w", paperID, err)
	}

	var rpt types.Report
	if err := json.Unmarshal([]byte(data), &rpt); err != nil {
		return types.Report{}, fmt.Errorf("decoding review %s: %w", paperID, err)
	}
	return rpt, nil
}

// Entry is one row of the archive listing.
type Entry struct {
	PaperID        string               `json:"paper_id" yaml:"paper_id"`
	Recommendation types.Recommendation `json:"recommendation" yaml:"recommendation"`
	OverallQuality types.QualityLevel   `json:"overall_quality" yaml:"overall_quality"`
	AverageScore   float64              `json:"average_score" yaml:"average_score"`
	IssueCount     int                  `json:"issue_count" yaml:"issue_count"`
	CreatedAt      string               `json:"created_at" yaml:"created_at"`
}

// List returns archive entries, most recent first. A non-positive
// limit uses the store default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id, recommendation, overall_quality, average_score, issue_count, created_at
		 FROM reviews ORDER BY created_at DESC, paper_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PaperID, &e.Recommendation, &e.OverallQuality, &e.AverageScore, &e.IssueCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning review row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
