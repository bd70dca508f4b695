package recorder

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordEvaluation(t *testing.T) {
	r := newTestRecorder(t)

	rec := &EvaluationRecord{
		Symbol: "600000",
		Price:  10.5,
		Composite: model.CompositeSignal{
			Direction: model.Buy, Strength: 0.6, Confidence: 0.7, Fraction: 0.3,
		},
		GrantedFraction: 0.25,
		Signals: []*model.StrategySignal{
			{Unit: config.UnitTrend, Direction: model.Buy, Strength: 1, Confidence: 0.7},
			{Unit: config.UnitSentiment, Direction: model.Sell, Strength: 0.5, Confidence: 0.8},
		},
		FailedUnits:    []string{config.UnitStrength},
		FractalCount:   4,
		StrokeCount:    3,
		SegmentCount:   1,
		PivotCount:     1,
		TrendDirection: model.Buy,
		PivotLower:     9.8,
		PivotUpper:     10.2,
	}
	if err := r.RecordEvaluation(rec); err != nil {
		t.Fatal(err)
	}

	var (
		symbol      string
		direction   int
		granted     float64
		trendScore  float64
		sentScore   float64
		failedUnits string
		strokeCount int
	)
	row := r.db.QueryRow(`SELECT symbol, direction, granted_fraction, trend_score,
		sentiment_score, failed_units, stroke_count FROM evaluations`)
	if err := row.Scan(&symbol, &direction, &granted, &trendScore, &sentScore, &failedUnits, &strokeCount); err != nil {
		t.Fatal(err)
	}
	if symbol != "600000" || direction != 1 || strokeCount != 3 {
		t.Errorf("unexpected row: symbol=%q direction=%d strokes=%d", symbol, direction, strokeCount)
	}
	if math.Abs(granted-0.25) > 1e-9 {
		t.Errorf("granted_fraction = %v, want 0.25", granted)
	}
	if math.Abs(trendScore-0.7) > 1e-9 {
		t.Errorf("trend_score = %v, want dir*strength*confidence = 0.7", trendScore)
	}
	if math.Abs(sentScore+0.4) > 1e-9 {
		t.Errorf("sentiment_score = %v, want -0.4", sentScore)
	}
	if failedUnits != config.UnitStrength {
		t.Errorf("failed_units = %q, want %q", failedUnits, config.UnitStrength)
	}
}

func TestRecordDivergence(t *testing.T) {
	r := newTestRecorder(t)
	evt := &DivergenceEvent{Symbol: "600000", Kind: "顶背驰", Magnitude: 0.45, Price: 11.2}
	if err := r.RecordDivergence(evt); err != nil {
		t.Fatal(err)
	}

	var kind string
	var magnitude float64
	if err := r.db.QueryRow(`SELECT kind, magnitude FROM divergences`).Scan(&kind, &magnitude); err != nil {
		t.Fatal(err)
	}
	if kind != "顶背驰" || math.Abs(magnitude-0.45) > 1e-9 {
		t.Errorf("unexpected divergence row: kind=%q magnitude=%v", kind, magnitude)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = &NoopRecorder{}
	if err := r.RecordEvaluation(&EvaluationRecord{}); err != nil {
		t.Errorf("noop RecordEvaluation returned %v", err)
	}
	if err := r.RecordDivergence(&DivergenceEvent{}); err != nil {
		t.Errorf("noop RecordDivergence returned %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("noop Close returned %v", err)
	}
}
