// Package collector supplies validated bar series to the engine. Market
// data retrieval is an external concern; fetchers only move plain bars.
package collector

import (
	"time"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// Fetcher defines the interface for fetching bar data.
type Fetcher interface {
	FetchBars(symbol string, limit int) ([]model.Bar, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Data map[string][]model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(symbol string, limit int) ([]model.Bar, error) {
	if bars, ok := m.Data[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(100, limit), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
