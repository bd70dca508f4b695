package chanlun

import (
	"reflect"
	"testing"

	"github.com/Taitony19930316/Medalion/internal/model"
)

// zigzagBars builds legs of 6 bars each, alternating up and down, so every
// turning point yields a fractal far enough from its neighbors to form strokes.
func zigzagBars(legs int) []model.Bar {
	var bars []model.Bar
	price := 100.0
	dir := 2.0
	idx := 0
	for leg := 0; leg < legs; leg++ {
		for i := 0; i < 6; i++ {
			price += dir
			bars = append(bars, bar(idx, price+1, price-1))
			idx++
		}
		dir = -dir
	}
	return bars
}

func TestRecognizer_ZigzagProducesAlternatingStrokes(t *testing.T) {
	rec := NewRecognizer(DefaultOptions())
	s := rec.Update(zigzagBars(5))

	if len(s.Strokes) < 3 {
		t.Fatalf("expected several strokes, got %d", len(s.Strokes))
	}
	for i, stk := range s.Strokes {
		if i > 0 && s.Strokes[i-1].Direction == stk.Direction {
			t.Errorf("stroke %d: direction did not alternate", i)
		}
		if stk.EndIndex-stk.StartIndex < 5 {
			t.Errorf("stroke %d: only %d bars", i, stk.EndIndex-stk.StartIndex)
		}
		if stk.Direction == model.Up && stk.EndPrice <= stk.StartPrice {
			t.Errorf("stroke %d: up stroke does not rise: %+v", i, stk)
		}
		if stk.Direction == model.Down && stk.EndPrice >= stk.StartPrice {
			t.Errorf("stroke %d: down stroke does not fall: %+v", i, stk)
		}
		if i < len(s.Strokes)-1 && !stk.Confirmed {
			t.Errorf("stroke %d: interior stroke must be confirmed", i)
		}
	}
	if s.Strokes[len(s.Strokes)-1].Confirmed {
		t.Error("trailing stroke must stay open")
	}
}

func TestRecognizer_UpdateIsDeterministic(t *testing.T) {
	bars := zigzagBars(6)
	rec := NewRecognizer(DefaultOptions())

	first := rec.Update(bars)
	second := rec.Update(bars)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must yield identical structural state")
	}
}

func TestRecognizer_StructureAccessors(t *testing.T) {
	empty := &Structure{}
	if _, ok := empty.LastStroke(); ok {
		t.Error("empty structure must have no last stroke")
	}
	if _, ok := empty.LastConfirmedStroke(); ok {
		t.Error("empty structure must have no confirmed stroke")
	}
	if _, ok := empty.LastSegment(); ok {
		t.Error("empty structure must have no last segment")
	}
	if _, ok := empty.LastPivot(); ok {
		t.Error("empty structure must have no last pivot")
	}

	s := NewRecognizer(DefaultOptions()).Update(zigzagBars(5))
	last, ok := s.LastStroke()
	if !ok {
		t.Fatal("zigzag must produce strokes")
	}
	if last.Confirmed {
		t.Error("last stroke of a live series should be open")
	}
	confirmed, ok := s.LastConfirmedStroke()
	if !ok {
		t.Fatal("zigzag must produce confirmed strokes")
	}
	if !confirmed.Confirmed {
		t.Error("LastConfirmedStroke returned an open stroke")
	}
}
