package strategy

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/calculator"
	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// RelativePositionUnit scores the current price's percentile within its
// lookback range: contrarian buys near the bottom, sells near the top, with
// confidence cut in half when the call runs against the structural trend.
// Bucket boundaries (0.8/0.6/0.4/0.2) follow the original daily strategy.
type RelativePositionUnit struct {
	Lookback int
}

// NewRelativePositionUnit builds the unit with the given lookback window.
func NewRelativePositionUnit(lookback int) *RelativePositionUnit {
	return &RelativePositionUnit{Lookback: lookback}
}

func (u *RelativePositionUnit) Name() string { return config.UnitPosition }

func (u *RelativePositionUnit) Evaluate(ctx *Context) (*model.StrategySignal, error) {
	pct, err := u.Percentile(ctx.Bars)
	if err != nil {
		return nil, fmt.Errorf("relative position: %w", err)
	}

	var dir model.Direction
	switch {
	case pct >= 0.8:
		dir = model.Sell
	case pct >= 0.6:
		dir = model.Sell
	case pct >= 0.4:
		dir = model.Hold
	case pct >= 0.2:
		dir = model.Buy
	default:
		dir = model.Buy
	}
	if dir == model.Hold {
		return holdSignal(u.Name(), fmt.Sprintf("位置 %.0f%%，中性区间", pct*100)), nil
	}

	strength := 2 * (pct - 0.5)
	if strength < 0 {
		strength = -strength
	}
	confidence := 0.6 + 0.2*strength

	// Contrarian calls only carry full weight inside a confirming context.
	if trend := structuralDirection(ctx.Structure); trend != model.Hold && trend != dir {
		confidence *= 0.5
	}

	return &model.StrategySignal{
		Unit:       u.Name(),
		Direction:  dir,
		Strength:   strength,
		Confidence: confidence,
		Rationale:  fmt.Sprintf("回看区间位置 %.0f%%", pct*100),
	}, nil
}

// Percentile returns the close's position within the lookback high/low range.
func (u *RelativePositionUnit) Percentile(bars []model.Bar) (float64, error) {
	if len(bars) == 0 {
		return 0, fmt.Errorf("no bars")
	}
	high, low, err := calculator.CalculateRange(bars, u.Lookback)
	if err != nil {
		return 0, err
	}
	return calculator.CalculateRangePosition(bars[len(bars)-1].Close, high, low)
}
