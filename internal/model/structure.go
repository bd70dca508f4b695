package model

// FractalKind distinguishes top and bottom fractals.
type FractalKind int

const (
	TopFractal FractalKind = iota
	BottomFractal
)

func (k FractalKind) String() string {
	if k == TopFractal {
		return "顶分型"
	}
	return "底分型"
}

// Fractal is a local 3-bar extremum. Index points into the bar slice.
type Fractal struct {
	Index int
	Kind  FractalKind
	Price float64 // the extreme high (top) or low (bottom) of the middle bar
}

// StrokeDirection is the direction of a stroke or segment.
type StrokeDirection int

const (
	Down StrokeDirection = -1
	Up   StrokeDirection = 1
)

func (d StrokeDirection) String() string {
	if d == Up {
		return "上"
	}
	return "下"
}

// Stroke connects two alternating fractals. StartFractal and EndFractal are
// indices into the fractal slice; StartIndex and EndIndex are bar indices.
// The last stroke of a series stays unconfirmed until a later opposite-kind
// fractal seals its endpoint.
type Stroke struct {
	StartFractal int
	EndFractal   int
	StartIndex   int
	EndIndex     int
	Direction    StrokeDirection
	StartPrice   float64
	EndPrice     float64
	Confirmed    bool
}

// High returns the upper bound of the stroke's price range.
func (s Stroke) High() float64 {
	if s.StartPrice > s.EndPrice {
		return s.StartPrice
	}
	return s.EndPrice
}

// Low returns the lower bound of the stroke's price range.
func (s Stroke) Low() float64 {
	if s.StartPrice < s.EndPrice {
		return s.StartPrice
	}
	return s.EndPrice
}

// Segment is a higher-level directional unit over consecutive strokes.
// StartStroke/EndStroke index into the stroke slice; a degenerate series
// with no strokes at all is represented as one open segment whose stroke
// indices are both -1.
type Segment struct {
	StartStroke int
	EndStroke   int
	StartIndex  int
	EndIndex    int
	Direction   StrokeDirection
	High        float64
	Low         float64
	Confirmed   bool
}

// StrokeCount reports how many strokes the segment spans.
func (s Segment) StrokeCount() int {
	if s.StartStroke < 0 {
		return 0
	}
	return s.EndStroke - s.StartStroke + 1
}

// Pivot is a zhongshu: a consolidation where at least three consecutive
// strokes share a price overlap. Bounds are frozen from the first three
// contributing strokes and never re-tightened.
type Pivot struct {
	Lower      float64
	Upper      float64
	StartUnit  int // first contributing stroke index
	EndUnit    int // last contributing stroke index
	EntryIndex int // bar index where the pivot opens
	ExitIndex  int // bar index where the pivot closes, -1 while open
	Open       bool
}

// DivergenceKind marks the direction of a divergence signal.
type DivergenceKind int

const (
	TopDivergence DivergenceKind = iota
	BottomDivergence
)

func (k DivergenceKind) String() string {
	if k == TopDivergence {
		return "顶背驰"
	}
	return "底背驰"
}

// DivergenceSignal flags weakening momentum between two same-direction
// strokes. EarlierStroke and LaterStroke index into the stroke slice.
type DivergenceSignal struct {
	Kind          DivergenceKind
	EarlierStroke int
	LaterStroke   int
	Magnitude     float64 // normalized oscillator shortfall, 0..1
}
