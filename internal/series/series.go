// Package series owns the ordered bar sequence for one instrument. Bars are
// validated once at ingestion and never mutated afterwards; all derived
// structures reference bars by index.
package series

import (
	"fmt"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// DataIntegrityError reports a malformed bar rejected at ingestion.
type DataIntegrityError struct {
	Symbol string
	Index  int
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: %s bar %d: %s", e.Symbol, e.Index, e.Reason)
}

// Series is an append-only bar sequence for one instrument.
type Series struct {
	Symbol string
	bars   []model.Bar
}

// New validates the given bars and wraps them in a Series. The bar slice is
// copied so the caller keeps ownership of its input.
func New(symbol string, bars []model.Bar) (*Series, error) {
	if err := Validate(symbol, bars); err != nil {
		return nil, err
	}
	s := &Series{Symbol: symbol, bars: make([]model.Bar, len(bars))}
	copy(s.bars, bars)
	return s, nil
}

// Append validates and appends new bars after the existing tail.
func (s *Series) Append(bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	if len(s.bars) > 0 && !bars[0].Time.After(s.bars[len(s.bars)-1].Time) {
		return &DataIntegrityError{Symbol: s.Symbol, Index: len(s.bars), Reason: "timestamp not after series tail"}
	}
	if err := Validate(s.Symbol, bars); err != nil {
		return err
	}
	s.bars = append(s.bars, bars...)
	return nil
}

// Bars returns the underlying bar slice. Callers must treat it as read-only.
func (s *Series) Bars() []model.Bar { return s.bars }

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// Validate checks bar well-formedness: strictly increasing timestamps and
// high >= max(open, close) >= min(open, close) >= low.
func Validate(symbol string, bars []model.Bar) error {
	for i, b := range bars {
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return &DataIntegrityError{Symbol: symbol, Index: i, Reason: "non-increasing timestamp"}
		}
		hi, lo := b.Open, b.Open
		if b.Close > hi {
			hi = b.Close
		}
		if b.Close < lo {
			lo = b.Close
		}
		if b.High < hi {
			return &DataIntegrityError{Symbol: symbol, Index: i, Reason: "high below open/close"}
		}
		if b.Low > lo {
			return &DataIntegrityError{Symbol: symbol, Index: i, Reason: "low above open/close"}
		}
	}
	return nil
}
