// seehuhn.de/go/sector - a 2.5D sector/portal renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sector

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser computes anti-aliased pixel coverage for the polygons and
// lines of the minimap. Coverage is the fraction of a pixel covered by the
// shape, from 0 to 1.
//
// Paths may only contain straight segments; curve segments are replaced by
// their chords. Internal buffers grow as needed and are reused, so that a
// Rasteriser does not allocate in steady state.
type Rasteriser struct {
	// CTM maps map coordinates to device pixels.
	CTM matrix.Matrix

	// Clip limits the output to this integer-aligned device rectangle.
	Clip rect.Rect

	// Width is the line width for Stroke, in map units.
	Width float64

	// Cap is the style of the line ends for Stroke.
	// Round caps are approximated by polygons.
	Cap graphics.LineCapStyle

	// Flatness is the maximal deviation of approximated round caps, in
	// device pixels.
	Flatness float64

	cover     []float32
	area      []float32
	edges     []edge
	active    []int
	crossings []float64

	stroke        []vec.Vec2 // outline vertices of all stroke polygons
	strokeOffsets []int      // start of each polygon in stroke

	bboxEmpty    bool
	bxMin, bxMax float64
	byMin, byMax float64
}

// NewRasteriser returns a rasteriser with the given clip rectangle, an
// identity CTM and unit-width lines with butt caps.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle,
// keeping the capacity of the internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Flatness = defaultFlatness
}

// FillNonZero fills the closed subpaths of p using the nonzero winding
// rule. The coverage of each row is passed to emit; the slice is only valid
// during the call.
func (r *Rasteriser) FillNonZero(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.startEdges()
	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = pts[0]
			start = current
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			end := pts[len(pts)-1]
			r.addEdge(current, end)
			current = end
		case path.CmdClose:
			r.addEdge(current, start)
			current = start
		}
	}
	if current != start {
		r.addEdge(current, start)
	}
	r.scan(emit)
}

// Stroke draws the segments of p as lines of the given Width. Every segment
// is outlined separately; the outlines are filled together, so that the
// overlap at corners is painted once.
func (r *Rasteriser) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	d := r.Width / 2
	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			current = pts[0]
			start = current
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			end := pts[len(pts)-1]
			r.addSegment(current, end, d)
			current = end
		case path.CmdClose:
			r.addSegment(current, start, d)
			current = start
		}
	}

	r.startEdges()
	for i, first := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[first:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.scan(emit)
}

// addSegment appends the outline of the line a-b, including its caps.
// All outlines have the same orientation.
func (r *Rasteriser) addSegment(a, b vec.Vec2, d float64) {
	ab := b.Sub(a)
	l := ab.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := ab.Mul(1 / l)
	n := vec.Vec2{X: -t.Y, Y: t.X}

	r.strokeOffsets = append(r.strokeOffsets, len(r.stroke))
	r.stroke = append(r.stroke, a.Add(n.Mul(d)), b.Add(n.Mul(d)))
	r.addCap(b, t, d)
	r.stroke = append(r.stroke, b.Sub(n.Mul(d)), a.Sub(n.Mul(d)))
	r.addCap(a, t.Mul(-1), d)
}

// addCap adds the cap at the end point p of a line. The vector t is the
// outward tangent and d is half the line width.
func (r *Rasteriser) addCap(p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		r.stroke = append(r.stroke, ext.Add(n.Mul(d)), ext.Sub(n.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(p, d, n)
	}
}

// addArc appends a half circle around center, starting in direction dir
// and turning clockwise through the outward tangent.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, dir vec.Vec2) {
	dev := max(r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())
	n := 2
	if dev > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/dev)
		if step > 0 && !math.IsNaN(step) {
			n = max(int(math.Ceil(math.Pi/step)), 2)
		}
	}
	for i := 1; i < n; i++ {
		sin, cos := math.Sincos(-math.Pi * float64(i) / float64(n))
		v := vec.Vec2{
			X: dir.X*cos - dir.Y*sin,
			Y: dir.X*sin + dir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(v.Mul(radius)))
	}
}

// transformLinear applies the linear part of the CTM to v.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

func (r *Rasteriser) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms the segment p0-p1 to device space and adds it to the
// edge list.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dx0, dy0 := r.CTM.Apply(p0.X, p0.Y)
	dx1, dy1 := r.CTM.Apply(p1.X, p1.Y)

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.bboxEmpty {
		r.bxMin, r.bxMax = min(dx0, dx1), max(dx0, dx1)
		r.byMin, r.byMax = min(dy0, dy1), max(dy0, dy1)
		r.bboxEmpty = false
		return
	}
	r.bxMin = min(r.bxMin, dx0, dx1)
	r.bxMax = max(r.bxMax, dx0, dx1)
	r.byMin = min(r.byMin, dy0, dy1)
	r.byMax = max(r.byMax, dy0, dy1)
}

// scan converts the edge list to coverage, one scanline at a time, using
// an active edge list.
//
// For each pixel two values are accumulated: cover, the signed vertical
// extent of the edges crossing the pixel, and area, the part of cover to
// the right of the crossing. The coverage of a pixel is the running sum of
// cover over the pixels to its left plus its own area.
func (r *Rasteriser) scan(emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.bxMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bxMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.byMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.byMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	next := 0
	r.active = r.active[:0]
	for y := yMin; y < yMax; y++ {
		yf, yfNext := float64(y), float64(y+1)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yfNext {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= yf {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if r.accumulateEdge(e, y, xMin, xMax) {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if cov, offset := trimZeros(r.cover); cov != nil {
			emit(y, xMin+offset, cov)
		}
	}
}

// accumulateEdge adds the contribution of e within the scanline y to the
// cover and area buffers, which start at device x coordinate xMin. It
// reports whether anything was added.
func (r *Rasteriser) accumulateEdge(e *edge, y, xMin, xMax int) bool {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	if pixRight < xMin {
		// left of the buffer: the whole extent counts as covered
		c := sign * float32(yBot-yTop)
		r.cover[0] += c
		r.area[0] += c
		return true
	}
	if pixLeft >= xMax {
		return false
	}

	if pixLeft == pixRight {
		r.addPiece(e, yTop, yBot, sign, xMin, xMax)
		return true
	}

	// split the edge where it crosses pixel boundaries
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)
	for i := 1; i < len(r.crossings); i++ {
		if r.crossings[i] > r.crossings[i-1] {
			r.addPiece(e, r.crossings[i-1], r.crossings[i], sign, xMin, xMax)
		}
	}
	return true
}

// addPiece adds the part of e between y0 and y1, which lies within a single
// pixel column.
func (r *Rasteriser) addPiece(e *edge, y0, y1 float64, sign float32, xMin, xMax int) {
	c := sign * float32(y1-y0)
	xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
	pix := int(math.Floor(xMid))
	switch {
	case pix < xMin:
		r.cover[0] += c
		r.area[0] += c
	case pix < xMax:
		i := pix - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-(xMid-float64(pix)))
	}
}

// integrateNonZero turns accumulated cover and area into coverage values,
// in place in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, and the offset of that part.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// Tolerances of the rasteriser.
const (
	// defaultFlatness is the default tolerance for round caps, in device
	// pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimal length of a stroked segment.
	zeroLengthThreshold = 1e-10
)
