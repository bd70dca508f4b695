package strategy

import "github.com/Taitony19930316/Medalion/internal/model"

// Sizer maps a fused direction/strength/confidence into a recommended
// position fraction. Multipliers follow the original sizing table:
// strength tiers 1.5/1.2/1.0, low-position boost 1.3, high-position cut 0.7.
// The result is bounded by Max; portfolio-level headroom is applied by the
// caller.
type Sizer struct {
	Base float64
	Max  float64
}

// NewSizer builds a Sizer with the configured base and per-instrument cap.
func NewSizer(base, max float64) *Sizer {
	return &Sizer{Base: base, Max: max}
}

// Fraction computes the recommended position fraction. pricePct is the
// instrument's percentile within its lookback range (0..1). Hold always
// maps to zero.
func (s *Sizer) Fraction(dir model.Direction, strength, confidence, pricePct float64) float64 {
	if dir == model.Hold {
		return 0
	}
	mult := 1.0
	switch {
	case strength >= 0.8:
		mult = 1.5
	case strength >= 0.5:
		mult = 1.2
	}
	posMult := 1.0
	if dir == model.Buy {
		switch {
		case pricePct <= 0.2:
			posMult = 1.3
		case pricePct >= 0.8:
			posMult = 0.7
		}
	}
	f := s.Base * mult * confidence * posMult
	if f > s.Max {
		f = s.Max
	}
	if f < 0 {
		f = 0
	}
	return f
}
