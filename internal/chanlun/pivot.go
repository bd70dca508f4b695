package chanlun

import "github.com/Taitony19930316/Medalion/internal/model"

// DetectPivots scans consecutive strokes for zhongshu consolidations.
//
// A pivot opens on the first three consecutive strokes whose price ranges
// share a common interval; its bounds are the intersection of exactly those
// three ranges and are never re-tightened. It extends while later strokes
// still touch the frozen bounds and closes on the first stroke that does
// not. Scanning resumes at the breaking stroke, which may seed the next
// pivot.
func DetectPivots(strokes []model.Stroke) []model.Pivot {
	var pivots []model.Pivot
	i := 0
	for i+2 < len(strokes) {
		lower, upper := intersect3(strokes[i], strokes[i+1], strokes[i+2])
		if lower >= upper {
			i++
			continue
		}
		p := model.Pivot{
			Lower:      lower,
			Upper:      upper,
			StartUnit:  i,
			EndUnit:    i + 2,
			EntryIndex: strokes[i].StartIndex,
			ExitIndex:  -1,
			Open:       true,
		}
		for j := i + 3; j < len(strokes); j++ {
			if strokes[j].Low() > p.Upper || strokes[j].High() < p.Lower {
				p.Open = false
				p.ExitIndex = strokes[p.EndUnit].EndIndex
				break
			}
			p.EndUnit = j
		}
		pivots = append(pivots, p)
		i = p.EndUnit + 1
	}
	return pivots
}

func intersect3(a, b, c model.Stroke) (lower, upper float64) {
	lower = a.Low()
	if b.Low() > lower {
		lower = b.Low()
	}
	if c.Low() > lower {
		lower = c.Low()
	}
	upper = a.High()
	if b.High() < upper {
		upper = b.High()
	}
	if c.High() < upper {
		upper = c.High()
	}
	return lower, upper
}
