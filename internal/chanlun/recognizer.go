// Package chanlun implements the structural recognition engine: fractal
// detection, stroke building, segment aggregation and pivot (zhongshu)
// detection over an ordered bar series. All levels are derived, arena-style
// append-only slices holding integer indices back into the bar slice.
package chanlun

import "github.com/Taitony19930316/Medalion/internal/model"

// Options tunes structural recognition.
type Options struct {
	MinKPerStroke    int     // minimum bars between stroke endpoint fractals
	FractalThreshold float64 // optional relative prominence filter, 0 disables
	PreferLater      bool    // tie-break: later bar wins equal-extreme contests
}

// DefaultOptions mirror the original daily-bar parameterization.
func DefaultOptions() Options {
	return Options{MinKPerStroke: 5, FractalThreshold: 0, PreferLater: true}
}

// Structure is the full derived structural state for one bar series.
type Structure struct {
	Fractals []model.Fractal
	Strokes  []model.Stroke
	Segments []model.Segment
	Pivots   []model.Pivot
}

// Recognizer runs structural recognition with fixed options. It holds no
// per-series state; Update is a pure function of its input bars.
type Recognizer struct {
	opts Options
}

// NewRecognizer returns a Recognizer, falling back to defaults for zero options.
func NewRecognizer(opts Options) *Recognizer {
	if opts.MinKPerStroke < 1 {
		opts.MinKPerStroke = DefaultOptions().MinKPerStroke
	}
	return &Recognizer{opts: opts}
}

// Update recomputes the full structural state for the given bars. Identical
// input always yields identical output; short series yield empty levels, not
// errors.
func (r *Recognizer) Update(bars []model.Bar) *Structure {
	s := &Structure{}
	s.Fractals = DetectFractals(bars, r.opts.FractalThreshold, r.opts.PreferLater)
	s.Strokes = BuildStrokes(s.Fractals, r.opts.MinKPerStroke, r.opts.PreferLater)
	s.Segments = BuildSegments(s.Strokes, bars)
	s.Pivots = DetectPivots(s.Strokes)
	return s
}

// LastStroke returns the most recent stroke, confirmed or open.
func (s *Structure) LastStroke() (model.Stroke, bool) {
	if len(s.Strokes) == 0 {
		return model.Stroke{}, false
	}
	return s.Strokes[len(s.Strokes)-1], true
}

// LastConfirmedStroke returns the most recent confirmed stroke.
func (s *Structure) LastConfirmedStroke() (model.Stroke, bool) {
	for i := len(s.Strokes) - 1; i >= 0; i-- {
		if s.Strokes[i].Confirmed {
			return s.Strokes[i], true
		}
	}
	return model.Stroke{}, false
}

// LastSegment returns the most recent segment.
func (s *Structure) LastSegment() (model.Segment, bool) {
	if len(s.Segments) == 0 {
		return model.Segment{}, false
	}
	return s.Segments[len(s.Segments)-1], true
}

// LastPivot returns the most recent pivot.
func (s *Structure) LastPivot() (model.Pivot, bool) {
	if len(s.Pivots) == 0 {
		return model.Pivot{}, false
	}
	return s.Pivots[len(s.Pivots)-1], true
}
