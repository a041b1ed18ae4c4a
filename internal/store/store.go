// Package store persists analysis results in SQLite for historical review.
// The pipeline treats it as fire-and-forget: a store failure never aborts a
// run.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

// Store is the SQLite-backed analysis archive.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) the database under dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "competitortracker.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	analysesTable := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		competitor TEXT NOT NULL,
		summary_bullets TEXT,
		strategic_insight TEXT,
		confidence_level TEXT,
		categories TEXT,
		relevant_dates TEXT,
		impact_score INTEGER,
		used_fallback_content INTEGER,
		fallback_summary INTEGER,
		content_length INTEGER,
		period_start DATETIME,
		period_end DATETIME,
		raw_content TEXT,
		generated_at DATETIME
	);`

	trendsTable := `
	CREATE TABLE IF NOT EXISTS trends (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dominant_theme TEXT,
		description TEXT,
		supporting_count INTEGER,
		recorded_at DATETIME
	);`

	indexStmt := `CREATE INDEX IF NOT EXISTS idx_analyses_competitor ON analyses (competitor, generated_at);`

	for _, stmt := range []string{analysesTable, trendsTable, indexStmt} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAnalysis stores one summary plus the raw content it was derived from
// and returns the stored record's ID.
func (s *Store) SaveAnalysis(summary core.Summary, rawContent string) (string, error) {
	bullets, err := json.Marshal(summary.SummaryBullets)
	if err != nil {
		return "", fmt.Errorf("failed to encode bullets: %w", err)
	}
	categories, err := json.Marshal(summary.Categories)
	if err != nil {
		return "", fmt.Errorf("failed to encode categories: %w", err)
	}
	dates, err := json.Marshal(summary.RelevantDates)
	if err != nil {
		return "", fmt.Errorf("failed to encode dates: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO analyses
	(id, competitor, summary_bullets, strategic_insight, confidence_level,
	 categories, relevant_dates, impact_score, used_fallback_content,
	 fallback_summary, content_length, period_start, period_end, raw_content, generated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query,
		summary.ID,
		summary.Competitor,
		string(bullets),
		summary.StrategicInsight,
		string(summary.ConfidenceLevel),
		string(categories),
		string(dates),
		summary.ImpactScore,
		summary.UsedFallbackContent,
		summary.FallbackSummary,
		summary.ContentLength,
		summary.AnalysisPeriod.Start,
		summary.AnalysisPeriod.End,
		rawContent,
		summary.GeneratedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save analysis for %s: %w", summary.Competitor, err)
	}
	return summary.ID, nil
}

// RecentAnalyses returns the most recently generated summaries, newest
// first, up to limit.
func (s *Store) RecentAnalyses(limit int) ([]core.Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, competitor, summary_bullets, strategic_insight, confidence_level,
		       categories, relevant_dates, impact_score, used_fallback_content,
		       fallback_summary, content_length, period_start, period_end, generated_at
		FROM analyses ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent analyses: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// CompetitorHistory returns a single competitor's summaries, newest first.
func (s *Store) CompetitorHistory(competitor string, limit int) ([]core.Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, competitor, summary_bullets, strategic_insight, confidence_level,
		       categories, relevant_dates, impact_score, used_fallback_content,
		       fallback_summary, content_length, period_start, period_end, generated_at
		FROM analyses WHERE competitor = ? ORDER BY generated_at DESC LIMIT ?`, competitor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", competitor, err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// SaveTrend records the dominant trend signal of one run.
func (s *Store) SaveTrend(trend core.TrendSignal) error {
	_, err := s.db.Exec(`
		INSERT INTO trends (dominant_theme, description, supporting_count, recorded_at)
		VALUES (?, ?, ?, ?)`,
		trend.DominantTheme, trend.Description, trend.SupportingCompetitorCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save trend: %w", err)
	}
	return nil
}

// CleanupOldData deletes analyses and trends older than the retention
// window and returns how many analysis rows were removed.
func (s *Store) CleanupOldData(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	res, err := s.db.Exec(`DELETE FROM analyses WHERE generated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up analyses: %w", err)
	}
	removed, _ := res.RowsAffected()

	if _, err := s.db.Exec(`DELETE FROM trends WHERE recorded_at < ?`, cutoff); err != nil {
		return removed, fmt.Errorf("failed to clean up trends: %w", err)
	}
	return removed, nil
}

func scanSummaries(rows *sql.Rows) ([]core.Summary, error) {
	var out []core.Summary
	for rows.Next() {
		var (
			s                          core.Summary
			bullets, categories, dates string
		)
		err := rows.Scan(&s.ID, &s.Competitor, &bullets, &s.StrategicInsight,
			&s.ConfidenceLevel, &categories, &dates, &s.ImpactScore,
			&s.UsedFallbackContent, &s.FallbackSummary, &s.ContentLength,
			&s.AnalysisPeriod.Start, &s.AnalysisPeriod.End, &s.GeneratedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}

		if err := json.Unmarshal([]byte(bullets), &s.SummaryBullets); err != nil {
			return nil, fmt.Errorf("corrupt bullets for %s: %w", s.Competitor, err)
		}
		if err := json.Unmarshal([]byte(categories), &s.Categories); err != nil {
			return nil, fmt.Errorf("corrupt categories for %s: %w", s.Competitor, err)
		}
		if err := json.Unmarshal([]byte(dates), &s.RelevantDates); err != nil {
			return nil, fmt.Errorf("corrupt dates for %s: %w", s.Competitor, err)
		}

		out = append(out, s)
	}
	return out, rows.Err()
}
