package calculator

import (
	"errors"
	"math"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// Bollinger holds the last Bollinger Band values.
type Bollinger struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// CalculateBollinger computes the Bollinger Bands over the most recent
// `period` closes with the given standard-deviation multiplier.
func CalculateBollinger(bars []model.Bar, period int, mult float64) (*Bollinger, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) < period {
		return nil, errors.New("not enough data for Bollinger calculation")
	}
	closes := extractCloses(bars)
	mid, err := CalculateSMA(closes, period)
	if err != nil {
		return nil, err
	}
	var variance float64
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - mid
		variance += d * d
	}
	std := math.Sqrt(variance / float64(period))
	return &Bollinger{Upper: mid + mult*std, Middle: mid, Lower: mid - mult*std}, nil
}
