package recorder

import "github.com/Taitony19930316/Medalion/internal/model"

// EvaluationRecord holds one instrument evaluation for persistence.
type EvaluationRecord struct {
	Symbol          string
	Price           float64
	Composite       model.CompositeSignal
	GrantedFraction float64
	Signals         []*model.StrategySignal
	FailedUnits     []string
	FractalCount    int
	StrokeCount     int
	SegmentCount    int
	PivotCount      int
	TrendDirection  model.Direction
	PivotLower      float64
	PivotUpper      float64
}

// DivergenceEvent records one detected divergence.
type DivergenceEvent struct {
	Symbol    string
	Kind      string
	Magnitude float64
	Price     float64
}

// Recorder persists evaluation history for later analysis.
type Recorder interface {
	RecordEvaluation(rec *EvaluationRecord) error
	RecordDivergence(evt *DivergenceEvent) error
	Close() error
}
