// Package divergence flags beichi: price pushing to a new extreme while the
// oscillator behind the move weakens.
package divergence

import (
	"github.com/Taitony19930316/Medalion/internal/calculator"
	"github.com/Taitony19930316/Medalion/internal/chanlun"
	"github.com/Taitony19930316/Medalion/internal/model"
)

// Measure selects the oscillator-extremity metric.
type Measure int

const (
	// MACDArea sums the absolute MACD histogram over the stroke's bar range.
	MACDArea Measure = iota
	// RSIPeak takes the most extreme RSI reading within the stroke's range.
	RSIPeak
)

// Analyzer compares consecutive same-direction strokes against an
// oscillator. It is stateless; every call derives from its inputs alone.
type Analyzer struct {
	measure Measure
}

// NewAnalyzer returns an Analyzer using the given oscillator measure.
func NewAnalyzer(measure Measure) *Analyzer {
	return &Analyzer{measure: measure}
}

// Analyze scans every pair of consecutive same-direction strokes (indices i
// and i+2) and emits a signal when the later stroke matches or extends the
// earlier one's price extremity while its oscillator extremity strictly
// falls short. Fewer than two qualifying units yield no signals.
func (a *Analyzer) Analyze(structure *chanlun.Structure, ind *calculator.IndicatorSet) []model.DivergenceSignal {
	strokes := structure.Strokes
	if len(strokes) < 3 {
		return nil
	}
	var signals []model.DivergenceSignal
	for i := 0; i+2 < len(strokes); i++ {
		earlier, later := strokes[i], strokes[i+2]
		if earlier.Direction != later.Direction {
			continue
		}
		extended := false
		kind := model.TopDivergence
		if earlier.Direction == model.Up {
			extended = later.EndPrice >= earlier.EndPrice
		} else {
			extended = later.EndPrice <= earlier.EndPrice
			kind = model.BottomDivergence
		}
		if !extended {
			continue
		}
		oscEarlier := a.extremity(earlier, ind)
		oscLater := a.extremity(later, ind)
		if oscEarlier <= 0 || oscLater >= oscEarlier {
			continue
		}
		signals = append(signals, model.DivergenceSignal{
			Kind:          kind,
			EarlierStroke: i,
			LaterStroke:   i + 2,
			Magnitude:     (oscEarlier - oscLater) / oscEarlier,
		})
	}
	return signals
}

// extremity measures oscillator effort over one stroke's bar range.
func (a *Analyzer) extremity(s model.Stroke, ind *calculator.IndicatorSet) float64 {
	switch a.measure {
	case RSIPeak:
		if len(ind.RSI) == 0 {
			return 0
		}
		// Distance of the most extreme in-range RSI from the neutral 50.
		extreme := 0.0
		for i := s.StartIndex; i <= s.EndIndex && i < len(ind.RSI); i++ {
			d := ind.RSI[i] - 50
			if d < 0 {
				d = -d
			}
			if d > extreme {
				extreme = d
			}
		}
		return extreme
	default:
		if ind.MACD == nil {
			return 0
		}
		area := 0.0
		for i := s.StartIndex; i <= s.EndIndex && i < len(ind.MACD.Histogram); i++ {
			h := ind.MACD.Histogram[i]
			if h < 0 {
				h = -h
			}
			area += h
		}
		return area
	}
}
