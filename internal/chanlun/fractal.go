package chanlun

import "github.com/Taitony19930316/Medalion/internal/model"

// DetectFractals slides a 3-bar window over the series and returns merged
// fractal candidates in bar order.
//
// A top candidate needs the middle bar's high to be >= both neighbors with
// strict inequality on at least one side; bottoms mirror on lows. Exact ties
// between the middle and one neighbor go to the later bar when preferLater
// is set (the default), otherwise to the earlier one. threshold, when
// positive, additionally requires the extreme to stand out from the weaker
// neighbor by that relative margin.
//
// Runs of adjacent same-kind candidates are merged down to the most extreme
// one, so the stroke builder always sees alternating material.
func DetectFractals(bars []model.Bar, threshold float64, preferLater bool) []model.Fractal {
	if len(bars) < 3 {
		return nil
	}
	var raw []model.Fractal
	for i := 1; i < len(bars)-1; i++ {
		left, mid, right := bars[i-1], bars[i], bars[i+1]

		topOK := mid.High >= left.High && mid.High > right.High
		if !preferLater {
			topOK = mid.High > left.High && mid.High >= right.High
		}
		if topOK && prominentTop(left, mid, right, threshold) {
			raw = append(raw, model.Fractal{Index: i, Kind: model.TopFractal, Price: mid.High})
		}

		bottomOK := mid.Low <= left.Low && mid.Low < right.Low
		if !preferLater {
			bottomOK = mid.Low < left.Low && mid.Low <= right.Low
		}
		if bottomOK && prominentBottom(left, mid, right, threshold) {
			raw = append(raw, model.Fractal{Index: i, Kind: model.BottomFractal, Price: mid.Low})
		}
	}
	return mergeAdjacent(raw, preferLater)
}

func prominentTop(left, mid, right model.Bar, threshold float64) bool {
	if threshold <= 0 || mid.High == 0 {
		return true
	}
	weaker := left.High
	if right.High > weaker {
		weaker = right.High
	}
	return (mid.High-weaker)/mid.High >= threshold
}

func prominentBottom(left, mid, right model.Bar, threshold float64) bool {
	if threshold <= 0 || mid.Low == 0 {
		return true
	}
	weaker := left.Low
	if right.Low < weaker {
		weaker = right.Low
	}
	return (weaker-mid.Low)/mid.Low >= threshold
}

// mergeAdjacent collapses consecutive same-kind candidates, keeping the more
// extreme one. Exact price ties keep the later candidate when preferLater is
// set, otherwise the earlier.
func mergeAdjacent(fractals []model.Fractal, preferLater bool) []model.Fractal {
	if len(fractals) < 2 {
		return fractals
	}
	out := make([]model.Fractal, 1, len(fractals))
	out[0] = fractals[0]
	for _, f := range fractals[1:] {
		last := &out[len(out)-1]
		if f.Kind != last.Kind {
			out = append(out, f)
			continue
		}
		if moreExtreme(f, *last, preferLater) {
			*last = f
		}
	}
	return out
}

// moreExtreme reports whether candidate a supersedes b (same kind assumed).
func moreExtreme(a, b model.Fractal, preferLater bool) bool {
	if a.Price == b.Price {
		return preferLater && a.Index > b.Index
	}
	if a.Kind == model.TopFractal {
		return a.Price > b.Price
	}
	return a.Price < b.Price
}
