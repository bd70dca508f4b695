package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// CSVFetcher reads bars from per-symbol CSV files in a directory, letting
// the engine consume exported data with no network dependency. Expected
// columns: date (2006-01-02), open, high, low, close, volume.
type CSVFetcher struct {
	Dir string
}

// NewCSVFetcher creates a fetcher rooted at the given directory.
func NewCSVFetcher(dir string) *CSVFetcher { return &CSVFetcher{Dir: dir} }

func (f *CSVFetcher) Name() string { return "csv" }

func (f *CSVFetcher) FetchBars(symbol string, limit int) ([]model.Bar, error) {
	path := filepath.Join(f.Dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv for %s: %w", symbol, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv for %s: %w", symbol, err)
	}
	var bars []model.Bar
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("csv for %s: row %d has %d columns, want 6", symbol, i+1, len(row))
		}
		// Skip a header row
		if i == 0 {
			if _, err := strconv.ParseFloat(row[1], 64); err != nil {
				continue
			}
		}
		bar, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv for %s: row %d: %w", symbol, i+1, err)
		}
		bars = append(bars, bar)
	}
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

func parseRow(row []string) (model.Bar, error) {
	t, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return model.Bar{}, fmt.Errorf("parse date %q: %w", row[0], err)
	}
	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return model.Bar{}, fmt.Errorf("parse column %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return model.Bar{Time: t, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4]}, nil
}
