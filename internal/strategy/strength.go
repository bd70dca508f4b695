package strategy

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// RelativeStrengthUnit compares the instrument's lookback return against a
// benchmark series. Buying requires both excess return above the threshold
// and a non-bearish structural trend.
type RelativeStrengthUnit struct {
	Lookback  int
	Threshold float64
}

// NewRelativeStrengthUnit builds the unit with the given lookback and
// excess-return threshold.
func NewRelativeStrengthUnit(lookback int, threshold float64) *RelativeStrengthUnit {
	return &RelativeStrengthUnit{Lookback: lookback, Threshold: threshold}
}

func (u *RelativeStrengthUnit) Name() string { return config.UnitStrength }

func (u *RelativeStrengthUnit) Evaluate(ctx *Context) (*model.StrategySignal, error) {
	if len(ctx.Bars) < 2 {
		return nil, fmt.Errorf("relative strength: need at least 2 bars, got %d", len(ctx.Bars))
	}
	if len(ctx.Benchmark) < 2 {
		return nil, fmt.Errorf("relative strength: benchmark series unavailable")
	}
	own := lookbackReturn(ctx.Bars, u.Lookback)
	bench := lookbackReturn(ctx.Benchmark, u.Lookback)
	excess := own - bench

	trend := structuralDirection(ctx.Structure)
	dir := model.Hold
	switch {
	case excess >= u.Threshold && trend != model.Sell:
		dir = model.Buy
	case excess <= -u.Threshold:
		dir = model.Sell
	}
	if dir == model.Hold {
		return holdSignal(u.Name(), fmt.Sprintf("超额收益 %+.2f%% 未达阈值", excess*100)), nil
	}

	strength := excess / (2 * u.Threshold)
	if strength < 0 {
		strength = -strength
	}
	if strength > 1 {
		strength = 1
	}
	confidence := 0.5 + 0.4*strength

	return &model.StrategySignal{
		Unit:       u.Name(),
		Direction:  dir,
		Strength:   strength,
		Confidence: confidence,
		Rationale:  fmt.Sprintf("相对基准超额收益 %+.2f%%", excess*100),
	}, nil
}

// lookbackReturn is the simple return over min(lookback, len-1) bars.
func lookbackReturn(bars []model.Bar, lookback int) float64 {
	start := len(bars) - 1 - lookback
	if start < 0 {
		start = 0
	}
	if bars[start].Close == 0 {
		return 0
	}
	return bars[len(bars)-1].Close/bars[start].Close - 1
}
