package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kcatlin/permsim/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    searchers INTEGER NOT NULL,
    slots INTEGER NOT NULL,
    trials INTEGER NOT NULL,
    attempts INTEGER NOT NULL,
    seed INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS outcomes (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    strategy TEXT NOT NULL,
    searcher INTEGER NOT NULL,
    trial INTEGER NOT NULL,
    success INTEGER NOT NULL,
    PRIMARY KEY (run_id, strategy, searcher, trial)
);

CREATE TABLE IF NOT EXISTS metrics (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    strategy TEXT NOT NULL,
    metric TEXT NOT NULL,
    searcher INTEGER NOT NULL,
    trial INTEGER NOT NULL,
    value REAL NOT NULL,
    PRIMARY KEY (run_id, strategy, metric, searcher, trial)
);

CREATE TABLE IF NOT EXISTS summaries (
    run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    strategy TEXT NOT NULL,
    successes INTEGER NOT NULL,
    peak INTEGER NOT NULL,
    PRIMARY KEY (run_id, strategy)
);
`

// SQLiteStore persists aggregate results into a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for ad-hoc queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// SaveRun writes one simulation run with all its outcomes, metrics, and
// summaries in a single transaction and returns the run id.
func (s *SQLiteStore) SaveRun(ctx context.Context, cfg models.RunConfig, attempts int, seed uint64, results map[string]*models.Aggregate, stats map[string]models.Summary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (name, created_at, searchers, slots, trials, attempts, seed) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		cfg.Name, time.Now().UTC().Format(time.RFC3339), cfg.Searchers, cfg.Slots, cfg.Trials, attempts, int64(seed))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	outcomeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (run_id, strategy, searcher, trial, success) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing outcome insert: %w", err)
	}
	defer outcomeStmt.Close()

	metricStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO metrics (run_id, strategy, metric, searcher, trial, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing metric insert: %w", err)
	}
	defer metricStmt.Close()

	for strategyName, agg := range results {
		for searcher, row := range agg.SuccessRows() {
			for trial, ok := range row {
				if _, err := outcomeStmt.ExecContext(ctx, runID, strategyName, searcher, trial, ok); err != nil {
					return 0, fmt.Errorf("inserting outcome: %w", err)
				}
			}
		}

		for _, metric := range agg.MetricNames() {
			for searcher, row := range agg.MetricRows(metric) {
				for trial, value := range row {
					if _, err := metricStmt.ExecContext(ctx, runID, strategyName, metric, searcher, trial, value); err != nil {
						return 0, fmt.Errorf("inserting metric: %w", err)
					}
				}
			}
		}
	}

	for strategyName, summary := range stats {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summaries (run_id, strategy, successes, peak) VALUES (?, ?, ?, ?)`,
			runID, strategyName, summary.Successes, summary.Peak); err != nil {
			return 0, fmt.Errorf("inserting summary: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}
