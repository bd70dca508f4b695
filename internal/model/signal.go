package model

// Direction is a trading decision direction.
type Direction int

const (
	Sell Direction = -1
	Hold Direction = 0
	Buy  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "买入"
	case Sell:
		return "卖出"
	default:
		return "持有"
	}
}

// StrategySignal is the output of a single strategy unit.
type StrategySignal struct {
	Unit       string
	Direction  Direction
	Strength   float64 // 0..1
	Confidence float64 // 0..1
	Rationale  string
}

// CompositeSignal is the fused decision over all strategy units. It is a
// fresh value each evaluation cycle, never mutated in place.
type CompositeSignal struct {
	Direction  Direction
	Strength   float64 // 0..1
	Confidence float64 // 0..1
	Fraction   float64 // recommended position fraction, 0..maxPosition
}
