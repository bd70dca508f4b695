package chanlun

import (
	"testing"

	"github.com/Taitony19930316/Medalion/internal/model"
)

func TestDetectPivots_BoundsFrozenOnFirstThree(t *testing.T) {
	// Ranges [100,110], [105,115], [108,112] overlap on [108,110]; the
	// breakout stroke [120,130] closes the pivot without touching its bounds.
	strokes := []model.Stroke{
		st(model.Up, 100, 110, 0, 5),
		st(model.Down, 115, 105, 5, 10),
		st(model.Up, 108, 112, 10, 15),
		st(model.Up, 120, 130, 15, 20),
	}
	pivots := DetectPivots(strokes)
	if len(pivots) != 1 {
		t.Fatalf("expected 1 pivot, got %d", len(pivots))
	}
	p := pivots[0]
	if p.Lower != 108 || p.Upper != 110 {
		t.Errorf("bounds = [%v, %v], want [108, 110]", p.Lower, p.Upper)
	}
	if p.Open {
		t.Error("breakout stroke must close the pivot")
	}
	if p.StartUnit != 0 || p.EndUnit != 2 {
		t.Errorf("pivot units = [%d, %d], want [0, 2]", p.StartUnit, p.EndUnit)
	}
	if p.ExitIndex != 15 {
		t.Errorf("exit index = %d, want 15", p.ExitIndex)
	}
}

func TestDetectPivots_TouchingStrokeExtends(t *testing.T) {
	strokes := []model.Stroke{
		st(model.Up, 100, 110, 0, 5),
		st(model.Down, 115, 105, 5, 10),
		st(model.Up, 108, 112, 10, 15),
		st(model.Up, 109, 120, 15, 20),
	}
	pivots := DetectPivots(strokes)
	if len(pivots) != 1 {
		t.Fatalf("expected 1 pivot, got %d", len(pivots))
	}
	p := pivots[0]
	if p.Lower != 108 || p.Upper != 110 {
		t.Errorf("extension must not re-tighten bounds, got [%v, %v]", p.Lower, p.Upper)
	}
	if !p.Open || p.EndUnit != 3 || p.ExitIndex != -1 {
		t.Errorf("touching stroke must extend the open pivot, got %+v", p)
	}
}

func TestDetectPivots_NoOverlapNoPivot(t *testing.T) {
	strokes := []model.Stroke{
		st(model.Up, 100, 110, 0, 5),
		st(model.Up, 120, 130, 5, 10),
		st(model.Up, 140, 150, 10, 15),
	}
	if pivots := DetectPivots(strokes); len(pivots) != 0 {
		t.Errorf("disjoint ranges must not open a pivot, got %d", len(pivots))
	}
}
