package scheduler

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Taitony19930316/Medalion/internal/collector"
	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/engine"
	"github.com/Taitony19930316/Medalion/internal/model"
	"github.com/Taitony19930316/Medalion/internal/notifier"
	"github.com/Taitony19930316/Medalion/internal/portfolio"
	"github.com/Taitony19930316/Medalion/internal/recorder"
)

// Scheduler runs the evaluation cycle on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Cfg       *config.Config
	Collector *collector.Collector
	Engine    *engine.Engine
	Portfolio *portfolio.Manager
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, cfg *config.Config, col *collector.Collector, eng *engine.Engine,
	pm *portfolio.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Cfg:       cfg,
		Collector: col,
		Engine:    eng,
		Portfolio: pm,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register registers the evaluation cron task.
func (s *Scheduler) Register(evalCron string) error {
	if _, err := s.Cron.AddFunc(evalCron, s.evalTask); err != nil {
		return fmt.Errorf("register eval task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the evaluation task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.evalTask()
}

func (s *Scheduler) evalTask() {
	log.Info().Int("symbols", len(s.Cfg.DataSource.Symbols)).Msg("running evaluation task")

	benchmark, err := s.Collector.CollectBenchmark(s.Cfg.DataSource.Benchmark)
	if err != nil {
		log.Warn().Err(err).Msg("benchmark collection failed, relative strength will be excluded")
		benchmark = nil
	}

	// Collection failures drop single instruments, never the whole batch.
	var instruments []engine.Instrument
	for _, symbol := range s.Cfg.DataSource.Symbols {
		sr, err := s.Collector.Collect(symbol)
		if err != nil {
			log.Error().Str("symbol", symbol).Err(err).Msg("collection failed")
			s.trySend(fmt.Sprintf("❌ %s 数据采集失败: %v", symbol, err))
			continue
		}
		instruments = append(instruments, engine.Instrument{Symbol: symbol, Bars: sr.Bars()})
	}

	items := s.Engine.EvaluateBatch(instruments, benchmark, runtime.NumCPU())
	for _, item := range items {
		if item.Err != nil {
			log.Error().Str("symbol", item.Symbol).Err(item.Err).Msg("evaluation rejected")
			s.trySend(fmt.Sprintf("❌ %s 评估失败: %v", item.Symbol, item.Err))
			continue
		}
		s.handleResult(item.Result)
	}

	state := s.Portfolio.GetState()
	s.trySend(notifier.FormatPortfolioStatus(&state))
}

func (s *Scheduler) handleResult(res *engine.Result) {
	granted := s.Portfolio.Apply(res.Symbol, res.Composite.Direction, res.Composite.Fraction)

	log.Info().
		Str("symbol", res.Symbol).
		Stringer("direction", res.Composite.Direction).
		Float64("confidence", res.Composite.Confidence).
		Float64("fraction", granted).
		Int("strokes", len(res.Structure.Strokes)).
		Msg("evaluation complete")

	s.trySend(notifier.FormatEvaluation(res, granted))

	if err := s.Recorder.RecordEvaluation(s.buildRecord(res, granted)); err != nil {
		log.Error().Str("symbol", res.Symbol).Err(err).Msg("record evaluation")
	}
	price := 0.0
	if n := len(res.Indicators.Close); n > 0 {
		price = res.Indicators.Close[n-1]
	}
	for _, d := range res.Divergences {
		if err := s.Recorder.RecordDivergence(&recorder.DivergenceEvent{
			Symbol:    res.Symbol,
			Kind:      d.Kind.String(),
			Magnitude: d.Magnitude,
			Price:     price,
		}); err != nil {
			log.Error().Str("symbol", res.Symbol).Err(err).Msg("record divergence")
		}
	}
}

func (s *Scheduler) buildRecord(res *engine.Result, granted float64) *recorder.EvaluationRecord {
	rec := &recorder.EvaluationRecord{
		Symbol:          res.Symbol,
		Composite:       res.Composite,
		GrantedFraction: granted,
		Signals:         res.Signals,
		FractalCount:    len(res.Structure.Fractals),
		StrokeCount:     len(res.Structure.Strokes),
		SegmentCount:    len(res.Structure.Segments),
		PivotCount:      len(res.Structure.Pivots),
		TrendDirection:  model.Hold,
	}
	if n := len(res.Indicators.Close); n > 0 {
		rec.Price = res.Indicators.Close[n-1]
	}
	for name := range res.Failed {
		rec.FailedUnits = append(rec.FailedUnits, name)
	}
	sort.Strings(rec.FailedUnits)
	if seg, ok := res.Structure.LastSegment(); ok {
		if seg.Direction == model.Up {
			rec.TrendDirection = model.Buy
		} else {
			rec.TrendDirection = model.Sell
		}
	}
	if piv, ok := res.Structure.LastPivot(); ok {
		rec.PivotLower = piv.Lower
		rec.PivotUpper = piv.Upper
	}
	return rec
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
