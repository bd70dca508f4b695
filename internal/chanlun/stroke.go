package chanlun

import "github.com/Taitony19930316/Medalion/internal/model"

// BuildStrokes connects alternating fractals into strokes. A stroke needs at
// least minK bars between its endpoint fractals. Every stroke except the
// trailing one is confirmed: the trailing stroke stays open and is the only
// one whose endpoint may still move, to a more extreme same-kind fractal.
func BuildStrokes(fractals []model.Fractal, minK int, preferLater bool) []model.Stroke {
	if len(fractals) < 2 {
		return nil
	}
	var strokes []model.Stroke
	anchor := 0
	for j := 1; j < len(fractals); j++ {
		f, a := fractals[j], fractals[anchor]
		if f.Kind == a.Kind {
			// Same-kind fractal past the anchor: adopt it when more extreme,
			// sliding the open stroke's endpoint with it.
			if moreExtreme(f, a, preferLater) {
				anchor = j
				if n := len(strokes); n > 0 {
					strokes[n-1].EndFractal = j
					strokes[n-1].EndIndex = f.Index
					strokes[n-1].EndPrice = f.Price
				}
			}
			continue
		}
		if f.Index-a.Index < minK {
			continue
		}
		dir := model.Up
		if f.Kind == model.BottomFractal {
			dir = model.Down
		}
		// The new opposite fractal seals the previous stroke's endpoint.
		if n := len(strokes); n > 0 {
			strokes[n-1].Confirmed = true
		}
		strokes = append(strokes, model.Stroke{
			StartFractal: anchor,
			EndFractal:   j,
			StartIndex:   a.Index,
			EndIndex:     f.Index,
			Direction:    dir,
			StartPrice:   a.Price,
			EndPrice:     f.Price,
		})
		anchor = j
	}
	return strokes
}
