package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/Taitony19930316/Medalion/internal/config"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
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

	// WAL mode for better concurrent read performance.
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
		`CREATE TABLE IF NOT EXISTS evaluations (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			price            REAL,
			direction        INTEGER,
			strength         REAL,
			confidence       REAL,
			fraction         REAL,
			granted_fraction REAL,
			trend_score      REAL,
			strength_score   REAL,
			position_score   REAL,
			divergence_score REAL,
			sentiment_score  REAL,
			failed_units     TEXT,
			fractal_count    INTEGER,
			stroke_count     INTEGER,
			segment_count    INTEGER,
			pivot_count      INTEGER,
			trend_direction  INTEGER,
			pivot_lower      REAL,
			pivot_upper      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_ts ON evaluations(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_symbol ON evaluations(symbol)`,

		`CREATE TABLE IF NOT EXISTS divergences (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			kind      TEXT,
			magnitude REAL,
			price     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_div_ts ON divergences(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(rec *EvaluationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Per-unit signed conviction scores, keyed by unit name.
	scores := map[string]float64{}
	for _, sig := range rec.Signals {
		scores[sig.Unit] = float64(sig.Direction) * sig.Strength * sig.Confidence
	}

	_, err := r.db.Exec(`INSERT INTO evaluations
		(timestamp, symbol, price, direction, strength, confidence, fraction, granted_fraction,
		 trend_score, strength_score, position_score, divergence_score, sentiment_score,
		 failed_units, fractal_count, stroke_count, segment_count, pivot_count,
		 trend_direction, pivot_lower, pivot_upper)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Price,
		int(rec.Composite.Direction), rec.Composite.Strength, rec.Composite.Confidence,
		rec.Composite.Fraction, rec.GrantedFraction,
		scores[config.UnitTrend], scores[config.UnitStrength], scores[config.UnitPosition],
		scores[config.UnitDivergence], scores[config.UnitSentiment],
		strings.Join(rec.FailedUnits, ","),
		rec.FractalCount, rec.StrokeCount, rec.SegmentCount, rec.PivotCount,
		int(rec.TrendDirection), rec.PivotLower, rec.PivotUpper,
	)
	return err
}

func (r *SQLiteRecorder) RecordDivergence(evt *DivergenceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO divergences (timestamp, symbol, kind, magnitude, price)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Kind, evt.Magnitude, evt.Price,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
