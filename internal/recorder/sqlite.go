package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	"StockDashboard/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
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

	// WAL lets external readers query while watch mode writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id      TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			provider    TEXT,
			symbols     TEXT,
			start_date  TEXT,
			end_date    TEXT,
			total_value TEXT,
			omitted     TEXT,
			unresolved  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS positions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			shares     INTEGER,
			unit_price TEXT,
			value      TEXT,
			resolved   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_positions_run ON positions(run_id)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			threshold     TEXT,
			current_price TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:30], err)
		}
	}
	return nil
}

// RecordRun writes the run, its positions and its alerts in one transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ts := rec.Timestamp.Unix()
	if _, err := tx.Exec(`INSERT INTO runs
		(run_id, timestamp, provider, symbols, start_date, end_date, total_value, omitted, unresolved)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.RunID, ts, rec.Provider, joinSymbols(rec.Symbols),
		rec.Start.Format("2006-01-02"), rec.End.Format("2006-01-02"),
		rec.Total.StringFixed(2), joinSymbols(rec.Omitted), joinSymbols(rec.Unresolved),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, p := range rec.Positions {
		if _, err := tx.Exec(`INSERT INTO positions
			(run_id, symbol, shares, unit_price, value, resolved)
			VALUES (?,?,?,?,?,?)`,
			rec.RunID, string(p.Symbol), p.Shares,
			p.UnitPrice.String(), p.Value.String(), p.Resolved,
		); err != nil {
			return fmt.Errorf("insert position %s: %w", p.Symbol, err)
		}
	}

	for _, a := range rec.Alerts {
		if _, err := tx.Exec(`INSERT INTO alerts
			(run_id, timestamp, symbol, threshold, current_price)
			VALUES (?,?,?,?,?)`,
			rec.RunID, ts, string(a.Symbol), a.Threshold.String(), a.CurrentPrice.String(),
		); err != nil {
			return fmt.Errorf("insert alert %s: %w", a.Symbol, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func joinSymbols(symbols []model.Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
