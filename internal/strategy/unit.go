// Package strategy holds the scoring units and the composite fusion engine.
// Units are a closed set behind one interface; each reads the shared context
// and keeps no state of its own between calls.
package strategy

import (
	"github.com/Taitony19930316/Medalion/internal/calculator"
	"github.com/Taitony19930316/Medalion/internal/chanlun"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// Context bundles everything a unit may read for one evaluation.
type Context struct {
	Bars        []model.Bar
	Benchmark   []model.Bar
	Structure   *chanlun.Structure
	Indicators  *calculator.IndicatorSet
	Divergences []model.DivergenceSignal
}

// Unit scores one dimension of the market into a directional signal.
type Unit interface {
	Name() string
	Evaluate(ctx *Context) (*model.StrategySignal, error)
}

// LastClose returns the most recent close, or 0 on an empty window.
func (c *Context) LastClose() float64 {
	if len(c.Bars) == 0 {
		return 0
	}
	return c.Bars[len(c.Bars)-1].Close
}

// structuralDirection derives the prevailing direction from the most recent
// confirmed stroke, falling back to the open stroke and then the last
// segment. Returns Hold when no structure exists.
func structuralDirection(s *chanlun.Structure) model.Direction {
	if s == nil {
		return model.Hold
	}
	if st, ok := s.LastConfirmedStroke(); ok {
		return directionOf(st.Direction)
	}
	if st, ok := s.LastStroke(); ok {
		return directionOf(st.Direction)
	}
	if seg, ok := s.LastSegment(); ok {
		return directionOf(seg.Direction)
	}
	return model.Hold
}

func directionOf(d model.StrokeDirection) model.Direction {
	if d == model.Up {
		return model.Buy
	}
	return model.Sell
}

func holdSignal(unit, rationale string) *model.StrategySignal {
	return &model.StrategySignal{Unit: unit, Direction: model.Hold, Strength: 0, Confidence: 0.5, Rationale: rationale}
}
