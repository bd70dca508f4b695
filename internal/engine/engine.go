// Package engine wires the structural recognizer, indicator layer,
// divergence analyzer and strategy units into one synchronous, side-effect
// free evaluation over a snapshot of bars.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Taitony19930316/Medalion/internal/calculator"
	"github.com/Taitony19930316/Medalion/internal/chanlun"
	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/divergence"
	"github.com/Taitony19930316/Medalion/internal/model"
	"github.com/Taitony19930316/Medalion/internal/series"
	"github.com/Taitony19930316/Medalion/internal/strategy"
)

// Result is the full output of one instrument evaluation: the composite
// decision plus every derived layer, for presentation and explanation
// collaborators.
type Result struct {
	Symbol      string
	Structure   *chanlun.Structure
	Indicators  *calculator.IndicatorSet
	Divergences []model.DivergenceSignal
	Signals     []*model.StrategySignal
	Failed      map[string]error // unit name -> evaluation failure
	Composite   model.CompositeSignal
}

// Engine evaluates instruments. All components are stateless, so one Engine
// may be shared across goroutines evaluating different instruments.
type Engine struct {
	recognizer *chanlun.Recognizer
	analyzer   *divergence.Analyzer
	units      []strategy.Unit
	fuser      *strategy.Fuser
	positioner *strategy.RelativePositionUnit
	params     calculator.Params
}

// New assembles an Engine from validated configuration.
func New(cfg *config.Config) *Engine {
	measure := divergence.MACDArea
	if cfg.Strategy.DivergenceMeasure == config.MeasureRSIPeak {
		measure = divergence.RSIPeak
	}
	positioner := strategy.NewRelativePositionUnit(cfg.Strategy.Lookback)
	return &Engine{
		recognizer: chanlun.NewRecognizer(chanlun.Options{
			MinKPerStroke:    cfg.Chan.MinKPerStroke,
			FractalThreshold: cfg.Chan.FractalThreshold,
			PreferLater:      cfg.PreferLater(),
		}),
		analyzer: divergence.NewAnalyzer(measure),
		units: []strategy.Unit{
			strategy.NewTrendUnit(cfg.Indicators.MAPeriods),
			strategy.NewRelativeStrengthUnit(cfg.Strategy.Lookback, cfg.Strategy.RSThreshold),
			positioner,
			strategy.NewDivergenceUnit(),
			strategy.NewSentimentUnit(cfg.Strategy.RSIOverbought, cfg.Strategy.RSIOversold,
				cfg.Strategy.RSIExtremeHigh, cfg.Strategy.RSIExtremeLow),
		},
		fuser: strategy.NewFuser(cfg.Strategy.Weights, cfg.Strategy.MinConfidence,
			strategy.NewSizer(cfg.Position.Base, cfg.Position.Max)),
		positioner: positioner,
		params: calculator.Params{
			MAPeriods:  cfg.Indicators.MAPeriods,
			MACDFast:   cfg.Indicators.MACD.Fast,
			MACDSlow:   cfg.Indicators.MACD.Slow,
			MACDSignal: cfg.Indicators.MACD.Signal,
			RSIPeriod:  cfg.Indicators.RSIPeriod,
			KDJPeriod:  cfg.Indicators.KDJ.Period,
			KDJK:       cfg.Indicators.KDJ.K,
			KDJD:       cfg.Indicators.KDJ.D,
			BollPeriod: cfg.Indicators.Boll.Period,
			BollMult:   cfg.Indicators.Boll.Mult,
		},
	}
}

// Evaluate runs the full pipeline for one instrument snapshot. Malformed
// bars are rejected before recognition; a failing strategy unit is excluded
// from fusion instead of aborting the evaluation.
func (e *Engine) Evaluate(symbol string, bars, benchmark []model.Bar) (*Result, error) {
	if err := series.Validate(symbol, bars); err != nil {
		return nil, err
	}
	ind, err := calculator.ComputeAll(bars, e.params)
	if err != nil {
		return nil, fmt.Errorf("indicators for %s: %w", symbol, err)
	}
	structure := e.recognizer.Update(bars)
	divs := e.analyzer.Analyze(structure, ind)

	ctx := &strategy.Context{
		Bars:        bars,
		Benchmark:   benchmark,
		Structure:   structure,
		Indicators:  ind,
		Divergences: divs,
	}

	res := &Result{
		Symbol:      symbol,
		Structure:   structure,
		Indicators:  ind,
		Divergences: divs,
		Failed:      make(map[string]error),
	}
	for _, u := range e.units {
		sig, err := u.Evaluate(ctx)
		if err != nil || sig == nil || !validSignal(sig) {
			if err == nil {
				err = fmt.Errorf("unit %s returned an invalid signal", u.Name())
			}
			log.Warn().Str("symbol", symbol).Str("unit", u.Name()).Err(err).
				Msg("strategy unit excluded from fusion")
			res.Failed[u.Name()] = err
			continue
		}
		res.Signals = append(res.Signals, sig)
	}

	pct, err := e.positioner.Percentile(bars)
	if err != nil {
		pct = 0.5
	}
	res.Composite = e.fuser.Fuse(res.Signals, pct)
	return res, nil
}

func validSignal(sig *model.StrategySignal) bool {
	return sig.Strength >= 0 && sig.Strength <= 1 &&
		sig.Confidence >= 0 && sig.Confidence <= 1 &&
		(sig.Direction == model.Buy || sig.Direction == model.Sell || sig.Direction == model.Hold)
}
