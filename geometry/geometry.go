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

// Package geometry provides the 2D primitives used by the level graph and
// the renderer: orientation tests, polygon predicates, segment intersection
// and near-plane clipping.
//
// Map space is right-handed with y up. Angles are in radians, measured
// counter-clockwise from the positive x-axis.
package geometry

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Orient returns twice the signed area of the triangle (a, b, p).
// The result is positive if p lies to the left of the directed line a→b,
// negative if it lies to the right and zero if the points are collinear.
func Orient(a, b, p vec.Vec2) float64 {
	return Cross(b.Sub(a), p.Sub(a))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates linearly between the points a and b.
func LerpVec(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// SignedArea returns the signed area of the closed polygon poly.
// Counter-clockwise polygons have positive area.
func SignedArea(poly []vec.Vec2) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var sum float64
	prev := poly[n-1]
	for _, p := range poly {
		sum += Cross(prev, p)
		prev = p
	}
	return sum / 2
}

// Clockwise reports whether poly is wound clockwise.
func Clockwise(poly []vec.Vec2) bool {
	return SignedArea(poly) < 0
}

// Bounds returns the smallest rectangle containing all points of poly.
// The result is the zero rectangle if poly is empty.
func Bounds(poly []vec.Vec2) rect.Rect {
	if len(poly) == 0 {
		return rect.Rect{}
	}
	r := rect.Rect{LLx: poly[0].X, LLy: poly[0].Y, URx: poly[0].X, URy: poly[0].Y}
	for _, p := range poly[1:] {
		r.LLx = min(r.LLx, p.X)
		r.LLy = min(r.LLy, p.Y)
		r.URx = max(r.URx, p.X)
		r.URy = max(r.URy, p.Y)
	}
	return r
}

// PointInPolygon reports whether p lies inside the closed polygon poly.
// Points on the boundary count as inside.
func PointInPolygon(p vec.Vec2, poly []vec.Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	a := poly[n-1]
	for _, b := range poly {
		if onSegment(p, a, b) {
			return true
		}
		// crossing number, half-open in y so that vertices are counted once
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		a = b
	}
	return inside
}

// onSegment reports whether p lies on the closed segment a-b.
func onSegment(p, a, b vec.Vec2) bool {
	if math.Abs(Orient(a, b, p)) > collinearEpsilon*max(1, b.Sub(a).Length()) {
		return false
	}
	return p.X >= min(a.X, b.X)-collinearEpsilon && p.X <= max(a.X, b.X)+collinearEpsilon &&
		p.Y >= min(a.Y, b.Y)-collinearEpsilon && p.Y <= max(a.Y, b.Y)+collinearEpsilon
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b vec.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := min(max(p.Sub(a).Dot(ab)/l2, 0), 1)
	return p.Sub(LerpVec(a, b, t)).Length()
}

// SegmentIntersection returns a common point of the closed segments a1-a2
// and b1-b2. Touching segments intersect. For collinear overlapping segments
// one of the shared endpoints is returned.
func SegmentIntersection(a1, a2, b1, b2 vec.Vec2) (vec.Vec2, bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := Cross(da, db)

	if denom == 0 {
		if Orient(a1, a2, b1) != 0 {
			return vec.Vec2{}, false // parallel
		}
		for _, p := range []vec.Vec2{b1, b2} {
			if onSegment(p, a1, a2) {
				return p, true
			}
		}
		for _, p := range []vec.Vec2{a1, a2} {
			if onSegment(p, b1, b2) {
				return p, true
			}
		}
		return vec.Vec2{}, false
	}

	d := b1.Sub(a1)
	t := Cross(d, db) / denom
	u := Cross(d, da) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vec.Vec2{}, false
	}
	return a1.Add(da.Mul(t)), true
}

// SegmentsCross reports whether the open segments a1-a2 and b1-b2 cross at
// a single interior point of both.
func SegmentsCross(a1, a2, b1, b2 vec.Vec2) bool {
	o1 := Orient(a1, a2, b1)
	o2 := Orient(a1, a2, b2)
	o3 := Orient(b1, b2, a1)
	o4 := Orient(b1, b2, a2)
	return o1*o2 < 0 && o3*o4 < 0
}

// Errors returned by SimplePolygon.
var (
	ErrTooFewVertices = errors.New("polygon has fewer than three vertices")
	ErrRepeatedVertex = errors.New("polygon repeats a vertex")
	ErrSelfIntersect  = errors.New("polygon edges intersect")
	ErrZeroArea       = errors.New("polygon has zero area")
)

// SimplePolygon checks that poly is a simple polygon: at least three
// distinct vertices, non-zero area, and no two non-adjacent edges touching.
func SimplePolygon(poly []vec.Vec2) error {
	n := len(poly)
	if n < 3 {
		return ErrTooFewVertices
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			if poly[i] == poly[j] {
				return ErrRepeatedVertex
			}
		}
	}
	if math.Abs(SignedArea(poly)) < collinearEpsilon {
		return ErrZeroArea
	}

	for i := range n {
		a1, a2 := poly[i], poly[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				// adjacent edges share a vertex; they may only overlap
				// if they fold back onto each other
				var shared, p, q vec.Vec2
				if j == i+1 {
					shared, p, q = a2, a1, poly[(j+1)%n]
				} else {
					shared, p, q = a1, a2, poly[j]
				}
				if Orient(p, shared, q) == 0 && p.Sub(shared).Dot(q.Sub(shared)) > 0 {
					return ErrSelfIntersect
				}
				continue
			}
			b1, b2 := poly[j], poly[(j+1)%n]
			if _, ok := SegmentIntersection(a1, a2, b1, b2); ok {
				return ErrSelfIntersect
			}
		}
	}
	return nil
}

// NormalizeAngle maps a to the interval (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ClipNear clips a view-space segment against the plane Y = near, where Y is
// the depth along the viewing direction. It returns the visible part of the
// segment and the fractions ta, tb of the original segment at which the
// clipped end points lie. If the segment is entirely behind the plane, ok is
// false.
func ClipNear(a, b vec.Vec2, near float64) (ca, cb vec.Vec2, ta, tb float64, ok bool) {
	if a.Y < near && b.Y < near {
		return a, b, 0, 1, false
	}
	ca, cb, ta, tb = a, b, 0, 1
	if a.Y < near {
		t := (near - a.Y) / (b.Y - a.Y)
		ca = LerpVec(a, b, t)
		ca.Y = near
		ta = t
	} else if b.Y < near {
		t := (near - a.Y) / (b.Y - a.Y)
		cb = LerpVec(a, b, t)
		cb.Y = near
		tb = t
	}
	return ca, cb, ta, tb, true
}

// ClipFrustum clips a view-space segment against the viewing wedge
// |X| <= tanHalf*Y and then against the plane Y = near. The results have
// the same meaning as for ClipNear. Points inside the wedge project to
// screen coordinates between the left and the right edge of the frame.
func ClipFrustum(a, b vec.Vec2, tanHalf, near float64) (ca, cb vec.Vec2, ta, tb float64, ok bool) {
	ta, tb = 0, 1
	for _, side := range [2]float64{1, -1} {
		// the inside of each wedge plane is side*X + tanHalf*Y >= 0
		fa := side*a.X + tanHalf*a.Y
		fb := side*b.X + tanHalf*b.Y
		switch {
		case fa < 0 && fb < 0:
			return a, b, 0, 1, false
		case fa < 0:
			ta = max(ta, fa/(fa-fb))
		case fb < 0:
			tb = min(tb, fa/(fa-fb))
		}
	}
	if ta >= tb {
		return a, b, 0, 1, false
	}

	wa, wb := LerpVec(a, b, ta), LerpVec(a, b, tb)
	ca, cb, na, nb, ok := ClipNear(wa, wb, near)
	if !ok {
		return a, b, 0, 1, false
	}
	return ca, cb, ta + (tb-ta)*na, ta + (tb-ta)*nb, true
}

// collinearEpsilon is the tolerance used for collinearity and
// point-on-segment tests in map units.
const collinearEpsilon = 1e-9
