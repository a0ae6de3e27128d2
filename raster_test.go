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
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// coverageSum rasterises with fn and returns the total coverage, checking
// that nothing is emitted outside clip.
func coverageSum(t *testing.T, clip rect.Rect, fn func(emit func(y, xMin int, coverage []float32))) float64 {
	t.Helper()
	var sum float64
	fn(func(y, xMin int, coverage []float32) {
		if y < int(clip.LLy) || y >= int(clip.URy) {
			t.Errorf("row %d outside clip", y)
		}
		if xMin < int(clip.LLx) || xMin+len(coverage) > int(clip.URx) {
			t.Errorf("row %d: columns [%d, %d) outside clip", y, xMin, xMin+len(coverage))
		}
		for _, c := range coverage {
			if c < 0 || c > 1 {
				t.Errorf("coverage %g out of range", c)
			}
			sum += float64(c)
		}
	})
	return sum
}

func TestTriangleCoverage(t *testing.T) {
	trianglePath := polygonPath(
		vec.Vec2{X: 0, Y: 0},
		vec.Vec2{X: 10, Y: 0},
		vec.Vec2{X: 10, Y: 1})

	clip := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 1}
	r := NewRasteriser(clip)

	coverage := make([]float32, 10)
	emit := func(y, xMin int, cov []float32) {
		if y == 0 {
			for i, c := range cov {
				coverage[xMin+i] = c
			}
		}
	}

	r.FillNonZero(trianglePath, emit)

	const epsilon = 1e-6
	for x := range 10 {
		expected := float32(2*x+1) / 20.0 // 0.05, 0.15, ..., 0.95
		actual := coverage[x]
		if math.Abs(float64(actual-expected)) > epsilon {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, actual)
		}
	}
}

func TestFillArea(t *testing.T) {
	square := polygonPath(
		vec.Vec2{X: 2.5, Y: 2.5},
		vec.Vec2{X: 2.5, Y: 6.5},
		vec.Vec2{X: 6.5, Y: 6.5},
		vec.Vec2{X: 6.5, Y: 2.5})

	tests := []struct {
		name string
		ctm  matrix.Matrix
		clip rect.Rect
		want float64
	}{
		{"identity", matrix.Identity, rect.Rect{URx: 20, URy: 20}, 16},
		{"scaled", matrix.Scale(2, 2), rect.Rect{URx: 20, URy: 20}, 64},
		{"flipped", matrix.Scale(1, -1).Translate(0, 10), rect.Rect{URx: 20, URy: 20}, 16},
		{"clipped", matrix.Identity, rect.Rect{URx: 4, URy: 20}, 6},
		{"outside", matrix.Identity.Translate(-100, 0), rect.Rect{URx: 20, URy: 20}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasteriser(tc.clip)
			r.CTM = tc.ctm
			got := coverageSum(t, tc.clip, func(emit func(int, int, []float32)) {
				r.FillNonZero(square, emit)
			})
			if math.Abs(got-tc.want) > 1e-4 {
				t.Errorf("area = %g, want %g", got, tc.want)
			}
		})
	}
}

func TestFillNonZeroOverlap(t *testing.T) {
	// two squares with the same orientation, overlapping in a 2x2 area
	p := joinPaths(
		polygonPath(
			vec.Vec2{X: 0, Y: 0},
			vec.Vec2{X: 0, Y: 4},
			vec.Vec2{X: 4, Y: 4},
			vec.Vec2{X: 4, Y: 0}),
		polygonPath(
			vec.Vec2{X: 2, Y: 2},
			vec.Vec2{X: 2, Y: 6},
			vec.Vec2{X: 6, Y: 6},
			vec.Vec2{X: 6, Y: 2}))

	clip := rect.Rect{URx: 10, URy: 10}
	r := NewRasteriser(clip)
	got := coverageSum(t, clip, func(emit func(int, int, []float32)) {
		r.FillNonZero(p, emit)
	})
	if want := 28.0; math.Abs(got-want) > 1e-4 {
		t.Errorf("area = %g, want %g", got, want)
	}
}

func TestStrokeArea(t *testing.T) {
	line := segmentPath([]vec.Vec2{{X: 4, Y: 8}, {X: 14, Y: 8}})
	corner := polylinePath(
		vec.Vec2{X: 2, Y: 10},
		vec.Vec2{X: 10, Y: 10},
		vec.Vec2{X: 10, Y: 2})

	tests := []struct {
		name string
		p    path.Path
		cap  graphics.LineCapStyle
		want float64
		tol  float64
	}{
		{"butt", line, graphics.LineCapButt, 20, 1e-4},
		{"square", line, graphics.LineCapSquare, 24, 1e-4},
		{"round", line, graphics.LineCapRound, 20 + math.Pi, 0.02},
		{"corner", corner, graphics.LineCapButt, 31, 1e-4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip := rect.Rect{URx: 20, URy: 20}
			r := NewRasteriser(clip)
			r.Width = 2
			r.Cap = tc.cap
			r.Flatness = 0.001
			got := coverageSum(t, clip, func(emit func(int, int, []float32)) {
				r.Stroke(tc.p, emit)
			})
			if math.Abs(got-tc.want) > tc.tol {
				t.Errorf("area = %g, want %g", got, tc.want)
			}
		})
	}
}

func TestFillCurveChords(t *testing.T) {
	// curve segments are replaced by the chord to their end point
	curved := path.Path(func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: 1, Y: 1}}) {
			return
		}
		if !yield(path.CmdQuadTo, []vec.Vec2{{X: 9, Y: -5}, {X: 9, Y: 1}}) {
			return
		}
		if !yield(path.CmdCubeTo, []vec.Vec2{{X: 15, Y: 3}, {X: 15, Y: 7}, {X: 9, Y: 9}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: 1, Y: 9}}) {
			return
		}
		yield(path.CmdClose, nil)
	})

	clip := rect.Rect{URx: 20, URy: 20}
	r := NewRasteriser(clip)
	got := coverageSum(t, clip, func(emit func(int, int, []float32)) {
		r.FillNonZero(curved, emit)
	})
	if want := 64.0; math.Abs(got-want) > 1e-4 {
		t.Errorf("area = %g, want %g", got, want)
	}
}

func TestStrokeZeroLength(t *testing.T) {
	p := segmentPath([]vec.Vec2{{X: 5, Y: 5}, {X: 5, Y: 5}})
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.Width = 2
	r.Stroke(p, func(y, xMin int, coverage []float32) {
		t.Errorf("unexpected output in row %d", y)
	})
}

func TestRasteriserReset(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Scale(3, 3)
	r.Width = 7
	r.Cap = graphics.LineCapRound

	clip := rect.Rect{URx: 5, URy: 5}
	r.Reset(clip)
	if r.CTM != matrix.Identity || r.Width != 1 || r.Cap != graphics.LineCapButt || r.Clip != clip {
		t.Errorf("Reset left %v, %g, %v, %v", r.CTM, r.Width, r.Cap, r.Clip)
	}
}

// polylinePath returns the open polyline through the given points.
func polylinePath(pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
	}
}

// joinPaths returns the concatenation of the given paths.
func joinPaths(paths ...path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range paths {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}
}
