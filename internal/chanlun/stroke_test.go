package chanlun

import (
	"testing"

	"github.com/Taitony19930316/Medalion/internal/model"
)

func fr(index int, kind model.FractalKind, price float64) model.Fractal {
	return model.Fractal{Index: index, Kind: kind, Price: price}
}

func TestBuildStrokes_AlternatingFractals(t *testing.T) {
	fractals := []model.Fractal{
		fr(0, model.BottomFractal, 10),
		fr(5, model.TopFractal, 20),
		fr(10, model.BottomFractal, 12),
		fr(15, model.TopFractal, 25),
	}
	strokes := BuildStrokes(fractals, 5, true)
	if len(strokes) != 3 {
		t.Fatalf("expected 3 strokes, got %d", len(strokes))
	}
	wantDirs := []model.StrokeDirection{model.Up, model.Down, model.Up}
	for i, s := range strokes {
		if s.Direction != wantDirs[i] {
			t.Errorf("stroke %d: direction = %v, want %v", i, s.Direction, wantDirs[i])
		}
		if i > 0 && strokes[i-1].Direction == s.Direction {
			t.Errorf("stroke %d: direction did not alternate", i)
		}
		if s.EndIndex-s.StartIndex < 5 {
			t.Errorf("stroke %d: spans %d bars, below minimum", i, s.EndIndex-s.StartIndex)
		}
	}
	if !strokes[0].Confirmed || !strokes[1].Confirmed {
		t.Error("all strokes before the trailing one must be confirmed")
	}
	if strokes[2].Confirmed {
		t.Error("trailing stroke must stay open")
	}
}

func TestBuildStrokes_MinKRejectsShortSwing(t *testing.T) {
	fractals := []model.Fractal{
		fr(0, model.BottomFractal, 10),
		fr(3, model.TopFractal, 20),
	}
	if strokes := BuildStrokes(fractals, 5, true); len(strokes) != 0 {
		t.Fatalf("gap of 3 bars must not form a stroke, got %d", len(strokes))
	}

	// A later top far enough away still connects to the original bottom.
	fractals = append(fractals, fr(7, model.TopFractal, 21))
	strokes := BuildStrokes(fractals, 5, true)
	if len(strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(strokes))
	}
	s := strokes[0]
	if s.StartIndex != 0 || s.EndIndex != 7 || s.EndPrice != 21 {
		t.Errorf("unexpected stroke %+v", s)
	}
}

func TestBuildStrokes_OpenStrokeExtendsToHigherTop(t *testing.T) {
	fractals := []model.Fractal{
		fr(0, model.BottomFractal, 10),
		fr(5, model.TopFractal, 20),
		fr(9, model.TopFractal, 22),
	}
	strokes := BuildStrokes(fractals, 5, true)
	if len(strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(strokes))
	}
	s := strokes[0]
	if s.EndIndex != 9 || s.EndPrice != 22 {
		t.Errorf("open stroke should slide to the higher top, got end %d @ %v", s.EndIndex, s.EndPrice)
	}
}

func TestBuildStrokes_LowerTopDoesNotMoveEndpoint(t *testing.T) {
	fractals := []model.Fractal{
		fr(0, model.BottomFractal, 10),
		fr(5, model.TopFractal, 20),
		fr(9, model.TopFractal, 18),
	}
	strokes := BuildStrokes(fractals, 5, true)
	if len(strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(strokes))
	}
	if s := strokes[0]; s.EndIndex != 5 || s.EndPrice != 20 {
		t.Errorf("lower top must not move the endpoint, got end %d @ %v", s.EndIndex, s.EndPrice)
	}
}
