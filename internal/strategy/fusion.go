package strategy

import "github.com/Taitony19930316/Medalion/internal/model"

// directionEpsilon is the dead zone around zero for the weighted sum; nets
// inside it resolve to Hold.
const directionEpsilon = 1e-9

// Fuser deterministically blends unit signals into one composite decision.
type Fuser struct {
	weights       map[string]float64
	minConfidence float64
	sizer         *Sizer
}

// NewFuser builds a Fuser. weights must already be validated (non-negative,
// summing to 1); minConfidence is the fail-safe below which the fused
// direction is forced to Hold.
func NewFuser(weights map[string]float64, minConfidence float64, sizer *Sizer) *Fuser {
	w := make(map[string]float64, len(weights))
	for k, v := range weights {
		w[k] = v
	}
	return &Fuser{weights: w, minConfidence: minConfidence, sizer: sizer}
}

// Fuse aggregates the given unit signals. Units that failed to evaluate are
// simply absent from the slice; renormalizing over the survivors
// redistributes their weight proportionally. pricePct feeds the sizer's
// position multiplier.
func (f *Fuser) Fuse(signals []*model.StrategySignal, pricePct float64) model.CompositeSignal {
	total := 0.0
	for _, sig := range signals {
		total += f.weights[sig.Unit]
	}
	if total <= 0 {
		// Confidence is undefined with zero usable weight: force Hold.
		return model.CompositeSignal{Direction: model.Hold}
	}

	var net, magnitude, confidence float64
	for _, sig := range signals {
		w := f.weights[sig.Unit] / total
		conviction := w * sig.Strength * sig.Confidence
		net += conviction * float64(sig.Direction)
		magnitude += conviction
		confidence += w * sig.Confidence
	}

	absNet := net
	if absNet < 0 {
		absNet = -absNet
	}
	// Disagreement penalty: shrink confidence by the share of conviction
	// that cancelled out.
	if magnitude > 0 {
		confidence *= absNet / magnitude
	}

	dir := model.Hold
	switch {
	case net > directionEpsilon:
		dir = model.Buy
	case net < -directionEpsilon:
		dir = model.Sell
	}
	if confidence < f.minConfidence {
		dir = model.Hold
	}

	strength := absNet
	if strength > 1 {
		strength = 1
	}

	out := model.CompositeSignal{Direction: dir, Strength: strength, Confidence: confidence}
	if f.sizer != nil {
		out.Fraction = f.sizer.Fraction(dir, strength, confidence, pricePct)
	}
	return out
}
