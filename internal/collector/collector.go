package collector

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/model"
	"github.com/Taitony19930316/Medalion/internal/series"
)

// Collector fetches and validates bar series for the configured symbols.
type Collector struct {
	Fetcher  Fetcher
	BarLimit int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, barLimit int) *Collector {
	return &Collector{Fetcher: fetcher, BarLimit: barLimit}
}

// Collect fetches one symbol's bars and validates them through the series
// store, so malformed data never reaches the recognizer.
func (c *Collector) Collect(symbol string) (*series.Series, error) {
	bars, err := c.Fetcher.FetchBars(symbol, c.BarLimit)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}
	s, err := series.New(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}
	return s, nil
}

// CollectBenchmark fetches the benchmark series; an empty symbol yields nil
// bars, which downgrades the relative-strength unit instead of failing.
func (c *Collector) CollectBenchmark(symbol string) ([]model.Bar, error) {
	if symbol == "" {
		return nil, nil
	}
	s, err := c.Collect(symbol)
	if err != nil {
		return nil, err
	}
	return s.Bars(), nil
}
