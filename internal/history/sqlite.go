package history

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ReservoirBench/internal/model"
	"ReservoirBench/internal/util"
)

// SQLiteRecorder persists runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external inspection can read while the tool writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite history opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS regression_runs (
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			points    INTEGER,
			slope     REAL,
			ogip      REAL,
			r_squared REAL,
			snapshot  BLOB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_regression_ts ON regression_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS decline_runs (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			source      TEXT,
			model       TEXT,
			qi          REAL,
			di          REAL,
			b           REAL,
			sse         REAL,
			r_squared   REAL,
			evaluations INTEGER,
			snapshot    BLOB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decline_ts ON decline_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS forecast_runs (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			source        TEXT,
			model         TEXT,
			horizon_years INTEGER,
			months        INTEGER,
			cumulative    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_forecast_ts ON forecast_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRegression(run *RegressionRun, snapshot *model.Dataset) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, err := encodeSnapshot(snapshot)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	_, err = r.db.Exec(`INSERT INTO regression_runs
		(id, timestamp, source, points, slope, ogip, r_squared, snapshot)
		VALUES (?,?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), run.Source, run.Points,
		run.Slope, run.OGIP, run.RSquared, blob,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *SQLiteRecorder) RecordDeclineFit(run *DeclineRun, snapshot *model.Dataset) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, err := encodeSnapshot(snapshot)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	_, err = r.db.Exec(`INSERT INTO decline_runs
		(id, timestamp, source, model, qi, di, b, sse, r_squared, evaluations, snapshot)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), run.Source, string(run.Model),
		run.Qi, run.Di, run.B, run.SSE, run.RSquared, run.Evaluations, blob,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *SQLiteRecorder) RecordForecast(run *ForecastRun) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	_, err := r.db.Exec(`INSERT INTO forecast_runs
		(id, timestamp, source, model, horizon_years, months, cumulative)
		VALUES (?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), run.Source, string(run.Model),
		run.HorizonYears, run.Months, run.Cumulative,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// RecentRuns lists the newest runs across all three tables.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	var out []RunSummary

	rows, err := r.db.Query(`SELECT id, timestamp, source, points, slope, ogip, r_squared
		FROM regression_runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s RunSummary
		var ts int64
		var points int
		var slope, ogip, r2 float64
		if err := rows.Scan(&s.ID, &ts, &s.Source, &points, &slope, &ogip, &r2); err != nil {
			rows.Close()
			return nil, err
		}
		s.Kind = "regression"
		s.CreatedAt = time.Unix(ts, 0)
		s.Headline = fmt.Sprintf("OGIP %.4g scf from %d points (R2 %.4f)", ogip, points, r2)
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(`SELECT id, timestamp, source, model, qi, di, r_squared
		FROM decline_runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s RunSummary
		var ts int64
		var kind string
		var qi, di, r2 float64
		if err := rows.Scan(&s.ID, &ts, &s.Source, &kind, &qi, &di, &r2); err != nil {
			rows.Close()
			return nil, err
		}
		s.Kind = "decline_fit"
		s.CreatedAt = time.Unix(ts, 0)
		s.Headline = fmt.Sprintf("%s qi=%.4g di=%.4g (R2 %.4f)", kind, qi, di, r2)
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(`SELECT id, timestamp, source, model, months, cumulative
		FROM forecast_runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s RunSummary
		var ts int64
		var kind string
		var months int
		var cum float64
		if err := rows.Scan(&s.ID, &ts, &s.Source, &kind, &months, &cum); err != nil {
			rows.Close()
			return nil, err
		}
		s.Kind = "forecast"
		s.CreatedAt = time.Unix(ts, 0)
		s.Headline = fmt.Sprintf("%s forecast over %d months, cumulative %.4g scf", kind, months, cum)
		out = append(out, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SnapshotByRun restores the dataset recorded with a fit run.
func (r *SQLiteRecorder) SnapshotByRun(id string) (*model.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var blob []byte
	var source string
	err := r.db.QueryRow(`SELECT snapshot, source FROM regression_runs WHERE id = ?`, id).
		Scan(&blob, &source)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.db.QueryRow(`SELECT snapshot, source FROM decline_runs WHERE id = ?`, id).
			Scan(&blob, &source)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, util.BadInputf("no run with id %s carries a snapshot", id)
	}
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, util.BadInputf("run %s was recorded without a snapshot", id)
	}
	return decodeSnapshot(blob, source)
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite history")
	return r.db.Close()
}
