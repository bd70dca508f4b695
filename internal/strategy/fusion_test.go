package strategy

import (
	"math"
	"testing"

	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/model"
)

func sig(unit string, dir model.Direction, strength, confidence float64) *model.StrategySignal {
	return &model.StrategySignal{Unit: unit, Direction: dir, Strength: strength, Confidence: confidence}
}

func TestFuse_MissingUnitWeightRedistributed(t *testing.T) {
	weights := map[string]float64{
		config.UnitTrend:      0.5,
		config.UnitDivergence: 0.3,
		config.UnitSentiment:  0.2,
	}
	f := NewFuser(weights, 0.5, nil)

	// Sentiment failed and is absent; its 0.2 spreads over the survivors.
	out := f.Fuse([]*model.StrategySignal{
		sig(config.UnitTrend, model.Buy, 1, 0.8),
		sig(config.UnitDivergence, model.Buy, 1, 0.6),
	}, 0.5)

	if out.Direction != model.Buy {
		t.Fatalf("direction = %v, want Buy", out.Direction)
	}
	want := (0.5*0.8 + 0.3*0.6) / 0.8
	if math.Abs(out.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %v, want weighted average of survivors %v", out.Confidence, want)
	}
	if math.Abs(out.Strength-want) > 1e-9 {
		t.Errorf("strength = %v, want %v", out.Strength, want)
	}
}

func TestFuse_DisagreementPenalty(t *testing.T) {
	weights := map[string]float64{config.UnitTrend: 0.6, config.UnitSentiment: 0.4}
	f := NewFuser(weights, 0.1, nil)

	out := f.Fuse([]*model.StrategySignal{
		sig(config.UnitTrend, model.Buy, 1, 1),
		sig(config.UnitSentiment, model.Sell, 1, 1),
	}, 0.5)

	if out.Direction != model.Buy {
		t.Fatalf("direction = %v, want Buy", out.Direction)
	}
	// 80% of the conviction cancelled out, so confidence drops to 0.2.
	if math.Abs(out.Confidence-0.2) > 1e-9 {
		t.Errorf("confidence = %v, want 0.2", out.Confidence)
	}
	if math.Abs(out.Strength-0.2) > 1e-9 {
		t.Errorf("strength = %v, want 0.2", out.Strength)
	}
}

func TestFuse_MinConfidenceForcesHold(t *testing.T) {
	weights := map[string]float64{config.UnitTrend: 0.6, config.UnitSentiment: 0.4}
	f := NewFuser(weights, 0.5, NewSizer(0.2, 0.5))

	out := f.Fuse([]*model.StrategySignal{
		sig(config.UnitTrend, model.Buy, 1, 1),
		sig(config.UnitSentiment, model.Sell, 1, 1),
	}, 0.5)

	if out.Direction != model.Hold {
		t.Errorf("low confidence must force Hold, got %v", out.Direction)
	}
	if out.Fraction != 0 {
		t.Errorf("Hold must size to zero, got %v", out.Fraction)
	}
}

func TestFuse_ExactTieIsHold(t *testing.T) {
	weights := map[string]float64{config.UnitTrend: 0.5, config.UnitSentiment: 0.5}
	f := NewFuser(weights, 0, nil)

	out := f.Fuse([]*model.StrategySignal{
		sig(config.UnitTrend, model.Buy, 1, 1),
		sig(config.UnitSentiment, model.Sell, 1, 1),
	}, 0.5)

	if out.Direction != model.Hold {
		t.Errorf("exact cancellation must resolve to Hold, got %v", out.Direction)
	}
	if out.Confidence != 0 {
		t.Errorf("fully cancelled conviction must zero confidence, got %v", out.Confidence)
	}
}

func TestFuse_NoUsableWeightIsHold(t *testing.T) {
	f := NewFuser(map[string]float64{config.UnitTrend: 1}, 0.5, nil)
	out := f.Fuse([]*model.StrategySignal{sig("unknown", model.Buy, 1, 1)}, 0.5)
	if out.Direction != model.Hold || out.Strength != 0 || out.Confidence != 0 {
		t.Errorf("zero usable weight must yield a zero Hold, got %+v", out)
	}
}

func TestFuse_EmptySignalsIsHold(t *testing.T) {
	f := NewFuser(map[string]float64{config.UnitTrend: 1}, 0.5, nil)
	if out := f.Fuse(nil, 0.5); out.Direction != model.Hold {
		t.Errorf("no signals must yield Hold, got %+v", out)
	}
}

func TestFuse_SizerAppliedToBuy(t *testing.T) {
	f := NewFuser(map[string]float64{config.UnitTrend: 1}, 0.5, NewSizer(0.2, 0.5))
	out := f.Fuse([]*model.StrategySignal{sig(config.UnitTrend, model.Buy, 1, 1)}, 0.1)
	if out.Direction != model.Buy {
		t.Fatalf("direction = %v, want Buy", out.Direction)
	}
	// base 0.2 * strong 1.5 * low-position 1.3
	if math.Abs(out.Fraction-0.39) > 1e-9 {
		t.Errorf("fraction = %v, want 0.39", out.Fraction)
	}
}

func TestSizer_Fraction(t *testing.T) {
	s := NewSizer(0.2, 0.5)
	tests := []struct {
		name       string
		dir        model.Direction
		strength   float64
		confidence float64
		pricePct   float64
		want       float64
	}{
		{"hold is flat", model.Hold, 1, 1, 0.5, 0},
		{"strong buy mid-range", model.Buy, 0.9, 1, 0.5, 0.3},
		{"strong buy near lows", model.Buy, 0.9, 1, 0.1, 0.39},
		{"strong buy near highs", model.Buy, 0.9, 1, 0.9, 0.21},
		{"moderate buy", model.Buy, 0.6, 1, 0.5, 0.24},
		{"weak buy", model.Buy, 0.3, 1, 0.5, 0.2},
		{"sell ignores position boost", model.Sell, 0.9, 1, 0.1, 0.3},
		{"confidence scales down", model.Buy, 0.9, 0.5, 0.5, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Fraction(tt.dir, tt.strength, tt.confidence, tt.pricePct)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSizer_CapsAtMax(t *testing.T) {
	s := NewSizer(0.4, 0.5)
	if got := s.Fraction(model.Buy, 1, 1, 0.5); got != 0.5 {
		t.Errorf("fraction = %v, want cap 0.5", got)
	}
}
