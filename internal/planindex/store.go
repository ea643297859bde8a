// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planindex catalogs generated plan documents in a SQLite
// database so past runs can be listed and filtered. The catalog sits
// outside the generation pipeline: generate never reads it, and a
// missing or stale catalog only affects the index and list commands.
// Implements: prd002-plan-catalog (R1-R3);
//
//	docs/ARCHITECTURE § Plan Catalog.
package planindex

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperplan/pkg/types"
)

const (
	indexDir     = "index"
	dbFile       = "plans.db"
	planFile     = "plan.md"
	evidenceFile = "plan_with_evidence.md"
)

// Store manages the plan catalog SQLite database.
type Store struct {
	db         *sql.DB
	baseDir    string
	maxResults int
}

// NewStore opens or creates the catalog database at
// baseDir/index/plans.db, creating the schema if needed (R1.2).
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.BaseDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, baseDir: cfg.BaseDir, maxResults: maxResults}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			objective TEXT,
			has_evidence INTEGER NOT NULL DEFAULT 0,
			file_mod_time TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plans_objective ON plans(objective)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ScanSummary holds counts from a catalog scan run.
type ScanSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of plans processed.
func (s ScanSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Scan walks the base directory for plan.md files and upserts a catalog
// record per plan directory. Unchanged files are skipped by modification
// time for incremental rescans (R2.1-R2.3).
func (s *Store) Scan(ctx context.Context, w io.Writer) (ScanSummary, error) {
	var summary ScanSummary

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// The catalog's own directory is not a plan.
			if d.Name() == indexDir && filepath.Dir(path) == filepath.Clean(s.baseDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != planFile {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		planID := planIDFor(s.baseDir, path)

		info, err := d.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", planID, err)
			summary.Failed++
			return nil
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		qerr := s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM plans WHERE id = ?`, planID,
		).Scan(&storedModTime)

		if qerr == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", planID)
			summary.Skipped++
			return nil
		}
		isUpdate := qerr == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", planID, err)
			summary.Failed++
			return nil
		}

		objective := readObjective(string(data))

		hasEvidence := 0
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), evidenceFile)); err == nil {
			hasEvidence = 1
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO plans (id, objective, has_evidence, file_mod_time)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				objective=excluded.objective, has_evidence=excluded.has_evidence,
				file_mod_time=excluded.file_mod_time`,
			planID, objective, hasEvidence, modTime,
		)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", planID, err)
			summary.Failed++
			return nil
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", planID)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", planID)
			summary.Indexed++
		}
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("scanning %s: %w", s.baseDir, err)
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// planIDFor derives a catalog ID from the plan's directory relative to
// the base directory.
func planIDFor(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, filepath.Dir(path))
	if err != nil || rel == "." {
		return filepath.Base(filepath.Dir(path))
	}
	return filepath.ToSlash(rel)
}

// readObjective pulls the first non-blank line after the Objective
// heading of a rendered plan document.
func readObjective(content string) string {
	lines := strings.Split(content, "\n")
	inObjective := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			inObjective = trimmed == "## Objective"
			continue
		}
		if inObjective && trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Record is one cataloged plan.
type Record struct {
	// ID is the plan directory relative to the catalog base.
	ID string

	// Objective is the first objective line of the concise document.
	Objective string

	// HasEvidence reports whether the annotated variant sits next to
	// the concise one.
	HasEvidence bool
}

// List returns cataloged plans ordered by ID, filtered by a substring
// match on the objective when query is non-empty (R3.1-R3.2).
func (s *Store) List(ctx context.Context, query string) ([]Record, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, objective, has_evidence FROM plans ORDER BY id LIMIT ?`,
			s.maxResults,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, objective, has_evidence FROM plans
			 WHERE objective LIKE ? ORDER BY id LIMIT ?`,
			"%"+query+"%", s.maxResults,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var hasEvidence int
		if err := rows.Scan(&r.ID, &r.Objective, &hasEvidence); err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		r.HasEvidence = hasEvidence != 0
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan rows: %w", err)
	}
	return records, nil
}
