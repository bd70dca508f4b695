package strategy

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// DivergenceUnit translates the analyzer's output directly: sell on top
// divergence, buy on bottom divergence, confidence scaled by magnitude.
// Only divergences ending on one of the last two strokes are acted on.
type DivergenceUnit struct{}

// NewDivergenceUnit builds the unit.
func NewDivergenceUnit() *DivergenceUnit { return &DivergenceUnit{} }

func (u *DivergenceUnit) Name() string { return config.UnitDivergence }

func (u *DivergenceUnit) Evaluate(ctx *Context) (*model.StrategySignal, error) {
	sig, ok := u.latestActionable(ctx)
	if !ok {
		return holdSignal(u.Name(), "无背驰"), nil
	}
	dir := model.Sell
	if sig.Kind == model.BottomDivergence {
		dir = model.Buy
	}
	return &model.StrategySignal{
		Unit:       u.Name(),
		Direction:  dir,
		Strength:   sig.Magnitude,
		Confidence: 0.5 + 0.5*sig.Magnitude,
		Rationale:  fmt.Sprintf("%s，力度衰减 %.0f%%", sig.Kind, sig.Magnitude*100),
	}, nil
}

func (u *DivergenceUnit) latestActionable(ctx *Context) (model.DivergenceSignal, bool) {
	if ctx.Structure == nil || len(ctx.Divergences) == 0 {
		return model.DivergenceSignal{}, false
	}
	cutoff := len(ctx.Structure.Strokes) - 2
	for i := len(ctx.Divergences) - 1; i >= 0; i-- {
		if ctx.Divergences[i].LaterStroke >= cutoff {
			return ctx.Divergences[i], true
		}
	}
	return model.DivergenceSignal{}, false
}
