package strategy

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// TrendUnit follows the direction of the most recent stroke and scales its
// strength with how many structural levels confirm it: the stroke itself,
// the enclosing segment, and a breakout past the last pivot's bounds.
type TrendUnit struct {
	MAPeriods []int // alignment check uses the first three periods (5/20/60 style)
}

// NewTrendUnit builds a TrendUnit with the configured MA periods.
func NewTrendUnit(maPeriods []int) *TrendUnit {
	return &TrendUnit{MAPeriods: maPeriods}
}

func (u *TrendUnit) Name() string { return config.UnitTrend }

func (u *TrendUnit) Evaluate(ctx *Context) (*model.StrategySignal, error) {
	dir := structuralDirection(ctx.Structure)
	if dir == model.Hold {
		return holdSignal(u.Name(), "无结构，观望"), nil
	}

	levels, agreeing := 0, 0
	if _, ok := ctx.Structure.LastStroke(); ok {
		levels++
		agreeing++ // direction is taken from the stroke layer
	}
	if seg, ok := ctx.Structure.LastSegment(); ok {
		levels++
		if directionOf(seg.Direction) == dir {
			agreeing++
		}
	}
	if piv, ok := ctx.Structure.LastPivot(); ok {
		levels++
		px := ctx.LastClose()
		if (dir == model.Buy && px > piv.Upper) || (dir == model.Sell && px < piv.Lower) {
			agreeing++
		}
	}
	strength := float64(agreeing) / float64(levels)

	confidence := 0.5
	alignment := u.maAlignment(ctx)
	switch {
	case alignment == dir:
		confidence = 0.9
	case alignment == model.Hold:
		confidence = 0.7
	}

	return &model.StrategySignal{
		Unit:       u.Name(),
		Direction:  dir,
		Strength:   strength,
		Confidence: confidence,
		Rationale:  fmt.Sprintf("%s趋势，%d/%d层级确认", dir, agreeing, levels),
	}, nil
}

// maAlignment reports Buy for a bull stack (fast > mid > slow), Sell for a
// bear stack, Hold otherwise or when series are unavailable.
func (u *TrendUnit) maAlignment(ctx *Context) model.Direction {
	if len(u.MAPeriods) < 3 || ctx.Indicators == nil {
		return model.Hold
	}
	last := func(period int) (float64, bool) {
		s := ctx.Indicators.MA[period]
		if len(s) == 0 {
			return 0, false
		}
		return s[len(s)-1], true
	}
	fast, ok1 := last(u.MAPeriods[0])
	mid, ok2 := last(u.MAPeriods[1])
	slow, ok3 := last(u.MAPeriods[2])
	if !ok1 || !ok2 || !ok3 {
		return model.Hold
	}
	switch {
	case fast > mid && mid > slow:
		return model.Buy
	case fast < mid && mid < slow:
		return model.Sell
	default:
		return model.Hold
	}
}
