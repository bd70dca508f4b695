package calculator

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// IndicatorSet bundles every series the strategy units read. MA series are
// keyed by period.
type IndicatorSet struct {
	Close []float64
	MA    map[int][]float64
	MACD  *MACD
	RSI   []float64
	KDJ   *KDJ
	Boll  *Bollinger
}

// Params configures indicator computation.
type Params struct {
	MAPeriods  []int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIPeriod  int
	KDJPeriod  int
	KDJK       int
	KDJD       int
	BollPeriod int
	BollMult   float64
}

// ComputeAll derives the full indicator set from the bars. Bollinger Bands
// need a full window and stay nil on short series; everything else degrades
// to its documented neutral default.
func ComputeAll(bars []model.Bar, p Params) (*IndicatorSet, error) {
	set := &IndicatorSet{Close: extractCloses(bars), MA: make(map[int][]float64)}
	for _, period := range p.MAPeriods {
		ma, err := SMASeries(set.Close, period)
		if err != nil {
			return nil, fmt.Errorf("ma%d: %w", period, err)
		}
		set.MA[period] = ma
	}
	macd, err := CalculateMACD(bars, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	set.MACD = macd
	rsi, err := RSISeries(bars, p.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	set.RSI = rsi
	kdj, err := CalculateKDJ(bars, p.KDJPeriod, p.KDJK, p.KDJD)
	if err != nil {
		return nil, fmt.Errorf("kdj: %w", err)
	}
	set.KDJ = kdj
	if len(bars) >= p.BollPeriod {
		boll, err := CalculateBollinger(bars, p.BollPeriod, p.BollMult)
		if err != nil {
			return nil, fmt.Errorf("boll: %w", err)
		}
		set.Boll = boll
	}
	return set, nil
}

// LastRSI returns the most recent RSI value, or the neutral 50 when empty.
func (s *IndicatorSet) LastRSI() float64 {
	if len(s.RSI) == 0 {
		return 50.0
	}
	return s.RSI[len(s.RSI)-1]
}
