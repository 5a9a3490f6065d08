package replay

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/armtrack/armtrack/internal/analysis"
)

// ResultsDB keeps analyzed sessions in a local SQLite file so reruns can be
// listed and compared without a server.
type ResultsDB struct {
	db *sql.DB
}

// Entry is one recorded replay run.
type Entry struct {
	AnalysisID   string    `json:"analysis_id"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	TotalReps    int       `json:"total_reps"`
	AverageScore float64   `json:"average_score"`
	Level        string    `json:"performance_level"`
}

// OpenResultsDB opens (or creates) the SQLite results database at
// dir/results.db.
func OpenResultsDB(dir string) (*ResultsDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "results.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS replay_results (
		analysis_id   TEXT PRIMARY KEY,
		source        TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		total_reps    INTEGER NOT NULL,
		average_score REAL NOT NULL,
		level         TEXT NOT NULL,
		summary       TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating results table: %w", err)
	}

	return &ResultsDB{db: db}, nil
}

// Record stores a completed analysis under its ID. The source is the input
// file the frames came from.
func (r *ResultsDB) Record(result *analysis.Result, source string) error {
	summary, err := json.Marshal(result.Summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO replay_results
		 (analysis_id, source, created_at, total_reps, average_score, level, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.AnalysisID, source, result.CreatedAt,
		result.Summary.TotalReps, result.Summary.AverageScore,
		result.Summary.PerformanceLevel, string(summary),
	)
	if err != nil {
		return fmt.Errorf("recording result: %w", err)
	}
	return nil
}

// List returns recorded runs, newest first.
func (r *ResultsDB) List() ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT analysis_id, source, created_at, total_reps, average_score, level
		 FROM replay_results ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.AnalysisID, &e.Source, &e.CreatedAt,
			&e.TotalReps, &e.AverageScore, &e.Level); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the results database.
func (r *ResultsDB) Close() error {
	return r.db.Close()
}
