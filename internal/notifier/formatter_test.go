package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/Taitony19930316/Medalion/internal/chanlun"
	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/engine"
	"github.com/Taitony19930316/Medalion/internal/model"
	"github.com/Taitony19930316/Medalion/internal/portfolio"
)

func TestFormatEvaluation(t *testing.T) {
	res := &engine.Result{
		Symbol: "600000",
		Structure: &chanlun.Structure{
			Strokes: []model.Stroke{
				{Direction: model.Up, StartPrice: 10, EndPrice: 12, Confirmed: true},
			},
			Segments: []model.Segment{
				{Direction: model.Up, StartStroke: 0, EndStroke: 0},
			},
			Pivots: []model.Pivot{
				{Lower: 10.5, Upper: 11.5, Open: true},
			},
		},
		Divergences: []model.DivergenceSignal{
			{Kind: model.TopDivergence, Magnitude: 0.4},
		},
		Signals: []*model.StrategySignal{
			{Unit: config.UnitTrend, Direction: model.Buy, Strength: 1, Confidence: 0.9, Rationale: "买入趋势"},
		},
		Failed: map[string]error{config.UnitStrength: nil},
		Composite: model.CompositeSignal{
			Direction: model.Buy, Strength: 0.7, Confidence: 0.8, Fraction: 0.3,
		},
	}

	msg := FormatEvaluation(res, 0.25)
	for _, want := range []string{
		"600000",
		"买入",
		"中枢 1",
		"[10.50, 11.50]",
		"延伸中",
		"顶背驰",
		config.UnitStrength + ": ❌",
		"建议仓位: 30.0%",
		"组合限额后 25.0%",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatEvaluation_GrantedEqualsRecommended(t *testing.T) {
	res := &engine.Result{
		Symbol:    "600000",
		Structure: &chanlun.Structure{},
		Composite: model.CompositeSignal{Direction: model.Hold},
	}
	msg := FormatEvaluation(res, 0)
	if strings.Contains(msg, "组合限额后") {
		t.Error("no cap note expected when nothing was withheld")
	}
}

func TestFormatPortfolioStatus(t *testing.T) {
	state := &portfolio.State{
		Positions: map[string]float64{"600000": 0.3},
		UpdatedAt: time.Date(2024, 5, 6, 15, 30, 0, 0, time.UTC),
	}
	msg := FormatPortfolioStatus(state)
	for _, want := range []string{"600000: 30.0%", "合计: 30.0%", "2024-05-06 15:30"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}

	empty := FormatPortfolioStatus(&portfolio.State{Positions: map[string]float64{}})
	if !strings.Contains(empty, "当前无持仓") {
		t.Error("empty portfolio must say so")
	}
}
