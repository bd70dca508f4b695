package calculator

import (
	"errors"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// KDJ holds the K, D and J series of the stochastic oscillator.
type KDJ struct {
	K []float64
	D []float64
	J []float64
}

// CalculateKDJ computes the KDJ oscillator with the classic smoothing
// (defaults 9/3/3). K and D start from the neutral 50.
func CalculateKDJ(bars []model.Bar, period, kSmooth, dSmooth int) (*KDJ, error) {
	if period <= 0 || kSmooth <= 0 || dSmooth <= 0 {
		return nil, errors.New("kdj periods must be positive")
	}
	n := len(bars)
	out := &KDJ{K: make([]float64, n), D: make([]float64, n), J: make([]float64, n)}
	k, d := 50.0, 50.0
	for i := 0; i < n; i++ {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		high, low := bars[i].High, bars[i].Low
		for j := start; j <= i; j++ {
			if bars[j].High > high {
				high = bars[j].High
			}
			if bars[j].Low < low {
				low = bars[j].Low
			}
		}
		rsv := 50.0
		if high > low {
			rsv = (bars[i].Close - low) / (high - low) * 100
		}
		k = (float64(kSmooth-1)*k + rsv) / float64(kSmooth)
		d = (float64(dSmooth-1)*d + k) / float64(dSmooth)
		out.K[i] = k
		out.D[i] = d
		out.J[i] = 3*k - 2*d
	}
	return out, nil
}
