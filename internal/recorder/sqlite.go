package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"StockPulse/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			price        REAL,
			rsi          REAL,
			macd         REAL,
			histogram    REAL,
			momentum     REAL,
			trend        TEXT,
			confidence   REAL,
			score        INTEGER,
			action       TEXT,
			support      TEXT,
			resistance   TEXT,
			data_points  INTEGER,
			source       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_symbol_ts ON analysis_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.GeneratedAt.IsZero() {
		snap.GeneratedAt = time.Now()
	}
	support, err := json.Marshal(levelsOrEmpty(snap.Support))
	if err != nil {
		return err
	}
	resistance, err := json.Marshal(levelsOrEmpty(snap.Resistance))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`INSERT INTO analysis_snapshots
		(id, timestamp, symbol, price, rsi, macd, histogram, momentum, trend,
		 confidence, score, action, support, resistance, data_points, source)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.ID, snap.GeneratedAt.UnixMilli(), snap.Symbol, snap.Price,
		snap.RSI, snap.MACD, snap.Histogram, snap.Momentum, string(snap.Trend),
		snap.Confidence, snap.Score, string(snap.Action),
		string(support), string(resistance), snap.DataPoints, snap.Source,
	)
	return err
}

// RecentAnalyses returns the newest snapshots for symbol, newest first.
func (r *SQLiteRecorder) RecentAnalyses(symbol string, limit int) ([]AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, price, rsi, macd, histogram, momentum,
		trend, confidence, score, action, support, resistance, data_points, source
		FROM analysis_snapshots WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisSnapshot
	for rows.Next() {
		var (
			s                   AnalysisSnapshot
			ts                  int64
			trend, action       string
			support, resistance string
		)
		if err := rows.Scan(&s.ID, &ts, &s.Symbol, &s.Price, &s.RSI, &s.MACD, &s.Histogram, &s.Momentum,
			&trend, &s.Confidence, &s.Score, &action, &support, &resistance, &s.DataPoints, &s.Source); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		s.GeneratedAt = time.UnixMilli(ts)
		s.Trend = model.Trend(trend)
		s.Action = model.Action(action)
		if err := json.Unmarshal([]byte(support), &s.Support); err != nil {
			return nil, fmt.Errorf("decode support: %w", err)
		}
		if err := json.Unmarshal([]byte(resistance), &s.Resistance); err != nil {
			return nil, fmt.Errorf("decode resistance: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func levelsOrEmpty(levels []float64) []float64 {
	if levels == nil {
		return []float64{}
	}
	return levels
}
