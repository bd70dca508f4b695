package calculator

import (
	"errors"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// MACD holds the full MACD line, signal line and histogram series.
type MACD struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// CalculateMACD computes MACD over the bar closes with the given periods
// (classic defaults 12/26/9).
func CalculateMACD(bars []model.Bar, fast, slow, signal int) (*MACD, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, errors.New("macd periods must be positive")
	}
	if fast >= slow {
		return nil, errors.New("macd fast period must be below slow period")
	}
	closes := extractCloses(bars)
	fastEMA, err := EMASeries(closes, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMASeries(closes, slow)
	if err != nil {
		return nil, err
	}
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	sig, err := EMASeries(line, signal)
	if err != nil {
		return nil, err
	}
	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - sig[i]
	}
	return &MACD{Line: line, Signal: sig, Histogram: hist}, nil
}
