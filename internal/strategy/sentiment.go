package strategy

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// SentimentUnit flags overbought/oversold extremes as contrarian signals.
// RSI carries the decision; a KDJ J-value blowout past 100 (or below 0)
// raises the strength one notch.
type SentimentUnit struct {
	Overbought  float64
	Oversold    float64
	ExtremeHigh float64
	ExtremeLow  float64
}

// NewSentimentUnit builds the unit with the configured RSI thresholds.
func NewSentimentUnit(overbought, oversold, extremeHigh, extremeLow float64) *SentimentUnit {
	return &SentimentUnit{Overbought: overbought, Oversold: oversold, ExtremeHigh: extremeHigh, ExtremeLow: extremeLow}
}

func (u *SentimentUnit) Name() string { return config.UnitSentiment }

func (u *SentimentUnit) Evaluate(ctx *Context) (*model.StrategySignal, error) {
	if ctx.Indicators == nil {
		return nil, fmt.Errorf("sentiment: indicators unavailable")
	}
	rsi := ctx.Indicators.LastRSI()

	var dir model.Direction
	var past, span float64
	switch {
	case rsi >= u.Overbought:
		dir = model.Sell
		past, span = rsi-u.Overbought, 100-u.Overbought
	case rsi <= u.Oversold:
		dir = model.Buy
		past, span = u.Oversold-rsi, u.Oversold
	default:
		return holdSignal(u.Name(), fmt.Sprintf("RSI=%.0f，情绪正常", rsi)), nil
	}

	strength := 0.5
	if span > 0 {
		strength = 0.5 + 0.5*past/span
	}
	if rsi >= u.ExtremeHigh || rsi <= u.ExtremeLow {
		strength = 1.0
	}
	if j, ok := u.lastJ(ctx); ok && ((dir == model.Sell && j > 100) || (dir == model.Buy && j < 0)) {
		if strength < 1.0 {
			strength += 0.2
			if strength > 1.0 {
				strength = 1.0
			}
		}
	}
	confidence := 0.5
	if span > 0 {
		confidence = 0.5 + 0.5*past/span
	}

	return &model.StrategySignal{
		Unit:       u.Name(),
		Direction:  dir,
		Strength:   strength,
		Confidence: confidence,
		Rationale:  fmt.Sprintf("RSI=%.0f，情绪%s", rsi, extremeLabel(dir)),
	}, nil
}

func (u *SentimentUnit) lastJ(ctx *Context) (float64, bool) {
	kdj := ctx.Indicators.KDJ
	if kdj == nil || len(kdj.J) == 0 {
		return 0, false
	}
	return kdj.J[len(kdj.J)-1], true
}

func extremeLabel(dir model.Direction) string {
	if dir == model.Sell {
		return "超买"
	}
	return "超卖"
}
