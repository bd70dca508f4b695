package engine

import (
	"sync"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// Instrument is one symbol's bar snapshot for batch evaluation.
type Instrument struct {
	Symbol string
	Bars   []model.Bar
}

// BatchItem pairs an instrument with its evaluation outcome. Err is set when
// the whole evaluation was rejected (bad data, indicator failure); other
// instruments in the batch are unaffected.
type BatchItem struct {
	Symbol string
	Result *Result
	Err    error
}

// EvaluateBatch evaluates every instrument on up to `workers` goroutines.
// Instruments share nothing mutable, so they run fully independently;
// results come back in input order.
func (e *Engine) EvaluateBatch(instruments []Instrument, benchmark []model.Bar, workers int) []BatchItem {
	if workers < 1 {
		workers = 1
	}
	items := make([]BatchItem, len(instruments))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, inst := range instruments {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, inst Instrument) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := e.Evaluate(inst.Symbol, inst.Bars, benchmark)
			items[i] = BatchItem{Symbol: inst.Symbol, Result: res, Err: err}
		}(i, inst)
	}
	wg.Wait()
	return items
}
