package chanlun

import (
	"math"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// BuildSegments aggregates strokes into higher-level directional units.
//
// A segment keeps its direction while pullbacks hold: in an up segment each
// down stroke must end at or above the previous down stroke's end. The first
// pullback that breaks beyond the prior pullback extreme closes the segment
// at its most extreme stroke, and the next segment starts right after it.
// A closed segment spanning at least three strokes is confirmed; closed
// segments are never edited afterwards.
//
// A series that never reverses has no strokes at all; it is represented as a
// single open segment spanning the whole bar range, so the trend layer still
// sees one directional unit.
func BuildSegments(strokes []model.Stroke, bars []model.Bar) []model.Segment {
	if len(strokes) == 0 {
		return degenerateSegment(bars)
	}
	var segments []model.Segment
	start := 0
	for start < len(strokes) {
		dir := strokes[start].Direction
		extreme := strokes[start].EndPrice
		extremeAt := start
		pullback := math.NaN()
		end := start
		broken := false

		for j := start + 1; j < len(strokes); j++ {
			st := strokes[j]
			if st.Direction == dir {
				if (dir == model.Up && st.EndPrice > extreme) || (dir == model.Down && st.EndPrice < extreme) {
					extreme = st.EndPrice
					extremeAt = j
				}
				end = j
				continue
			}
			if !math.IsNaN(pullback) &&
				((dir == model.Up && st.EndPrice < pullback) || (dir == model.Down && st.EndPrice > pullback)) {
				broken = true
				break
			}
			pullback = st.EndPrice
			end = j
		}

		segEnd := end
		if broken {
			segEnd = extremeAt
		}
		segments = append(segments, makeSegment(strokes, start, segEnd, dir, broken))
		if !broken {
			break
		}
		start = extremeAt + 1
	}
	return segments
}

func makeSegment(strokes []model.Stroke, start, end int, dir model.StrokeDirection, closed bool) model.Segment {
	seg := model.Segment{
		StartStroke: start,
		EndStroke:   end,
		StartIndex:  strokes[start].StartIndex,
		EndIndex:    strokes[end].EndIndex,
		Direction:   dir,
		High:        strokes[start].High(),
		Low:         strokes[start].Low(),
		Confirmed:   closed && end-start+1 >= 3,
	}
	for i := start + 1; i <= end; i++ {
		if h := strokes[i].High(); h > seg.High {
			seg.High = h
		}
		if l := strokes[i].Low(); l < seg.Low {
			seg.Low = l
		}
	}
	return seg
}

// degenerateSegment maps a strokeless series onto one open directional unit.
func degenerateSegment(bars []model.Bar) []model.Segment {
	if len(bars) < 2 || bars[len(bars)-1].Close == bars[0].Close {
		return nil
	}
	dir := model.Up
	if bars[len(bars)-1].Close < bars[0].Close {
		dir = model.Down
	}
	seg := model.Segment{
		StartStroke: -1,
		EndStroke:   -1,
		StartIndex:  0,
		EndIndex:    len(bars) - 1,
		Direction:   dir,
		High:        bars[0].High,
		Low:         bars[0].Low,
	}
	for _, b := range bars[1:] {
		if b.High > seg.High {
			seg.High = b.High
		}
		if b.Low < seg.Low {
			seg.Low = b.Low
		}
	}
	return []model.Segment{seg}
}
