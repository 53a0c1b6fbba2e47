// Package locate implements the PatternLocator (component L): finding the
// three finder patterns and the relevant alignment pattern in a binarized
// image. The run-length scanning and ray-scoring approach is the classic
// ZXing finder-pattern search (as described in spec.md §4.L), adapted to
// this package's own BitMatrix and without ZXing's broader
// multi-resolution retry machinery.
package locate

import (
	"math"

	"github.com/jalphad/qrforge/qrcode/binarize"
)

// Point is a floating-point image coordinate.
type Point struct {
	X, Y float64
}

func (p Point) distance(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Pattern is a located finder or alignment pattern: its centre, the
// module size it was measured at, and a ratio-match score (lower is
// better).
type Pattern struct {
	Point
	ModuleSize float64
	Score      float64
}

// Result is the complete set of located reference points needed by the
// Extractor.
type Result struct {
	TopLeft, TopRight, BottomLeft Pattern
	Alignment                     Point
	Dimension                     int
}

// Locate scans img for the three finder patterns and the alignment
// pattern they imply, returning ok=false if no consistent triple is
// found.
func Locate(img *binarize.BitMatrix) (Result, bool) {
	finderCandidates := scanFinderCandidates(img)
	if len(finderCandidates) < 3 {
		return Result{}, false
	}

	top := bestScoring(finderCandidates, 4)
	best, ok := bestTriple(top)
	if !ok {
		return Result{}, false
	}

	tl, tr, bl := disambiguate(best[0], best[1], best[2])

	moduleSize := (tl.ModuleSize + tr.ModuleSize + bl.ModuleSize) / 3
	if moduleSize < 1 {
		return Result{}, false
	}

	dTR := tl.distance(tr.Point) / moduleSize
	dBL := tl.distance(bl.Point) / moduleSize
	dimension := int(math.Round(dTR)+math.Round(dBL))/2 + 7
	dimension = snapToOneModFour(dimension)

	interFinderModules := float64(dimension) - 7
	var alignment Point
	if interFinderModules < 15 {
		alignment = expectedAlignment(tl.Point, tr.Point, bl.Point, interFinderModules)
	} else {
		expected := expectedAlignment(tl.Point, tr.Point, bl.Point, interFinderModules)
		alignCandidates := scanAlignmentCandidates(img)
		alignment = closestAlignment(alignCandidates, expected)
	}

	return Result{
		TopLeft:    tl,
		TopRight:   tr,
		BottomLeft: bl,
		Alignment:  alignment,
		Dimension:  dimension,
	}, true
}

func snapToOneModFour(d int) int {
	for d%4 != 1 {
		d++
	}
	return d
}

func expectedAlignment(tl, tr, bl Point, interFinderModules float64) Point {
	factor := 1 - 3/interFinderModules
	return Point{
		X: tl.X + factor*((tr.X-tl.X)+(bl.X-tl.X)),
		Y: tl.Y + factor*((tr.Y-tl.Y)+(bl.Y-tl.Y)),
	}
}

func closestAlignment(candidates []Pattern, expected Point) Point {
	if len(candidates) == 0 {
		return expected
	}
	best := candidates[0]
	bestScore := best.Score + best.distance(expected)
	for _, c := range candidates[1:] {
		s := c.Score + c.distance(expected)
		if s < bestScore {
			bestScore = s
			best = c
		}
	}
	return best.Point
}

// run is one same-colour run ending at endX on row y.
type run struct {
	length int
	endX   int
}

// scanFinderCandidates runs the 1:1:3:1:1 state machine row by row,
// aggregating same-column hits across rows into vertically consistent
// quads before scoring each with ray evaluation.
func scanFinderCandidates(img *binarize.BitMatrix) []Pattern {
	var raw []Pattern
	for y := 0; y < img.Height; y++ {
		var history [5]int
		count := 0
		lastColor := false
		runLen := 0
		for x := 0; x <= img.Width; x++ {
			dark := x < img.Width && img.Get(x, y)
			if x > 0 && dark == lastColor {
				runLen++
				continue
			}
			if x > 0 {
				if count < 5 {
					history[count] = runLen
					count++
				} else {
					copy(history[:4], history[1:])
					history[4] = runLen
					count = 5
				}
				if count == 5 && lastColor && isFinderRatio(history) {
					sum := history[0] + history[1] + history[2] + history[3] + history[4]
					avg := float64(sum) / 7
					centerX := float64(x-history[4]-history[3]) - float64(history[2])/2
					raw = append(raw, Pattern{Point: Point{X: centerX, Y: float64(y)}, ModuleSize: avg})
				}
			}
			lastColor = dark
			runLen = 1
		}
	}
	return aggregateAndScore(img, raw)
}

func isFinderRatio(h [5]int) bool {
	sum := h[0] + h[1] + h[2] + h[3] + h[4]
	avg := float64(sum) / 7
	if avg < 1 {
		return false
	}
	within := func(v int, mult float64) bool {
		return math.Abs(float64(v)-avg) <= mult*avg
	}
	return within(h[0], 1) && within(h[1], 1) && within(h[3], 1) && within(h[4], 1) &&
		math.Abs(float64(h[2])-3*avg) <= 3*avg
}

// aggregateAndScore groups nearby row-hits into quads and scores each by
// evaluating 1:1:3:1:1 rays through its centre.
func aggregateAndScore(img *binarize.BitMatrix, raw []Pattern) []Pattern {
	type quad struct {
		xs   []float64
		yMin float64
		yMax float64
	}
	var quads []*quad
	for _, p := range raw {
		placed := false
		for _, q := range quads {
			if p.Y-q.yMax <= 2 {
				meanX := mean(q.xs)
				if math.Abs(p.X-meanX) < p.ModuleSize*2 {
					q.xs = append(q.xs, p.X)
					q.yMax = p.Y
					placed = true
					break
				}
			}
		}
		if !placed {
			quads = append(quads, &quad{xs: []float64{p.X}, yMin: p.Y, yMax: p.Y})
		}
	}

	var out []Pattern
	for _, q := range quads {
		if q.yMax-q.yMin < 2 {
			continue
		}
		center := Point{X: mean(q.xs), Y: (q.yMin + q.yMax) / 2}
		score, moduleSize, ok := scoreRays(img, center)
		if !ok {
			continue
		}
		out = append(out, Pattern{Point: center, ModuleSize: moduleSize, Score: score})
	}
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// scoreRays traces four 1:1:3:1:1 rays (horizontal, vertical, both
// diagonals) through center and scores the candidate by the sum of
// squared ratio deviations plus a size-variance term.
func scoreRays(img *binarize.BitMatrix, center Point) (score, avgModuleSize float64, ok bool) {
	dirs := [4][2]float64{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	var sizes []float64
	total := 0.0
	for _, d := range dirs {
		runs, ok := traceRay(img, center, d[0], d[1])
		if !ok {
			return 0, 0, false
		}
		sum := runs[0] + runs[1] + runs[2] + runs[3] + runs[4]
		avg := sum / 7
		sizes = append(sizes, avg)
		dev := 0.0
		for i, r := range runs {
			target := avg
			if i == 2 {
				target = 3 * avg
			}
			diff := r - target
			dev += diff * diff
		}
		total += dev
	}
	variance := 0.0
	m := mean(sizes)
	for _, s := range sizes {
		d := s - m
		variance += d * d
	}
	return total + variance, m, true
}

// traceRay walks outward in both directions from center along (dx,dy),
// measuring the five alternating run lengths of the 1:1:3:1:1 pattern
// centred there (dark,light,dark-center,light,dark in module units).
func traceRay(img *binarize.BitMatrix, center Point, dx, dy float64) ([5]float64, bool) {
	norm := math.Hypot(dx, dy)
	dx, dy = dx/norm, dy/norm

	var runs [5]float64
	centerDark := sampleAt(img, center.X, center.Y)
	if !centerDark {
		return runs, false
	}

	// Walk from center outward in the +direction, then the -direction,
	// accumulating run lengths symmetric about the centre's dark run.
	forward := traceHalf(img, center, dx, dy)
	backward := traceHalf(img, center, -dx, -dy)
	runs[2] = forward[0] + backward[0]
	runs[1] = backward[1]
	runs[3] = forward[1]
	runs[0] = backward[2]
	runs[4] = forward[2]
	if runs[0] == 0 || runs[1] == 0 || runs[3] == 0 || runs[4] == 0 {
		return runs, false
	}
	return runs, true
}

// traceHalf walks from center outward along (dx, dy), returning the
// half-lengths of the center dark run, the next light run, and the next
// dark run beyond it.
func traceHalf(img *binarize.BitMatrix, center Point, dx, dy float64) [3]float64 {
	var lengths [3]float64
	step := 0.0
	phase := 0
	for {
		step += 0.5
		x, y := center.X+dx*step, center.Y+dy*step
		if x < 0 || y < 0 || x >= float64(img.Width) || y >= float64(img.Height) {
			break
		}
		dark := sampleAt(img, x, y)
		switch phase {
		case 0:
			if dark {
				lengths[0] += 0.5
				continue
			}
			phase = 1
		case 1:
			if !dark {
				lengths[1] += 0.5
				continue
			}
			phase = 2
		case 2:
			if dark {
				lengths[2] += 0.5
				continue
			}
			return lengths
		}
	}
	return lengths
}

func sampleAt(img *binarize.BitMatrix, x, y float64) bool {
	xi, yi := int(math.Floor(x)), int(math.Floor(y))
	if xi < 0 || yi < 0 || xi >= img.Width || yi >= img.Height {
		return false
	}
	return img.Get(xi, yi)
}

func scanAlignmentCandidates(img *binarize.BitMatrix) []Pattern {
	var raw []Pattern
	for y := 0; y < img.Height; y++ {
		var history [3]int
		count := 0
		lastColor := false
		runLen := 0
		for x := 0; x <= img.Width; x++ {
			dark := x < img.Width && img.Get(x, y)
			if x > 0 && dark == lastColor {
				runLen++
				continue
			}
			if x > 0 {
				if count < 3 {
					history[count] = runLen
					count++
				} else {
					copy(history[:2], history[1:])
					history[2] = runLen
					count = 3
				}
				if count == 3 && !lastColor && isAlignmentRatio(history) {
					sum := history[0] + history[1] + history[2]
					avg := float64(sum) / 3
					centerX := float64(x-history[2]) - float64(history[1])/2
					raw = append(raw, Pattern{Point: Point{X: centerX, Y: float64(y)}, ModuleSize: avg})
				}
			}
			lastColor = dark
			runLen = 1
		}
	}
	// Collapse near-duplicate hits across adjacent rows into single points.
	var out []Pattern
	for _, p := range raw {
		merged := false
		for i := range out {
			if math.Abs(out[i].X-p.X) < p.ModuleSize && math.Abs(out[i].Y-p.Y) < p.ModuleSize*3 {
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, p)
		}
	}
	return out
}

func isAlignmentRatio(h [3]int) bool {
	avg := float64(h[0]+h[1]+h[2]) / 3
	if avg < 1 {
		return false
	}
	within := func(v int) bool { return math.Abs(float64(v)-avg) <= avg }
	return within(h[0]) && within(h[1]) && within(h[2])
}

func bestScoring(candidates []Pattern, n int) []Pattern {
	sorted := append([]Pattern(nil), candidates...)
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Score < sorted[i].Score {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// bestTriple picks, for each candidate, the two others minimising
// other.score + (other.size-this.size)^2/this.size, then keeps the
// lowest-combined-score triple.
func bestTriple(candidates []Pattern) ([3]Pattern, bool) {
	if len(candidates) < 3 {
		return [3]Pattern{}, false
	}
	bestScore := math.Inf(1)
	var best [3]Pattern
	found := false
	for i, a := range candidates {
		type scored struct {
			p Pattern
			s float64
		}
		var others []scored
		for j, b := range candidates {
			if j == i {
				continue
			}
			diff := b.ModuleSize - a.ModuleSize
			s := b.Score + diff*diff/a.ModuleSize
			others = append(others, scored{b, s})
		}
		for x := 0; x < len(others); x++ {
			for y := x + 1; y < len(others); y++ {
				total := a.Score + others[x].s + others[y].s
				if total < bestScore {
					bestScore = total
					best = [3]Pattern{a, others[x].p, others[y].p}
					found = true
				}
			}
		}
	}
	return best, found
}

// disambiguate identifies top-left (nearest the other two, the corner of
// the right angle), then uses the sign of the cross product (TR-TL) x
// (BL-TL) to assign top-right vs bottom-left among the remainder.
func disambiguate(a, b, c Pattern) (tl, tr, bl Pattern) {
	dAB := a.distance(b.Point)
	dBC := b.distance(c.Point)
	dAC := a.distance(c.Point)

	var p1, p2 Pattern
	switch {
	case dBC >= dAB && dBC >= dAC:
		tl, p1, p2 = a, b, c
	case dAC >= dAB && dAC >= dBC:
		tl, p1, p2 = b, a, c
	default:
		tl, p1, p2 = c, a, b
	}

	cross := (p1.X-tl.X)*(p2.Y-tl.Y) - (p1.Y-tl.Y)*(p2.X-tl.X)
	if cross < 0 {
		tr, bl = p2, p1
	} else {
		tr, bl = p1, p2
	}
	return tl, tr, bl
}
