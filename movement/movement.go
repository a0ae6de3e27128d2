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

// Package movement moves a camera through a level, keeping track of the
// sector which contains it.
//
// Movement is two-dimensional: the camera slides along solid walls and
// passes through portals whose opening is large enough. After every move
// the eye is kept at the same height above the floor.
package movement

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector"
	"seehuhn.de/go/sector/geometry"
	"seehuhn.de/go/sector/level"
)

// Mover holds the parameters of camera movement.
type Mover struct {
	// StepHeight is the largest rise of the floor which can be climbed.
	// Zero means half the height of the eye above the floor.
	StepHeight float64

	// HeadRoom is the space needed between the eye and the ceiling.
	HeadRoom float64

	// Radius is the distance the camera keeps from walls it cannot pass.
	// Zero means DefaultRadius.
	Radius float64
}

// DefaultRadius is the collision radius used when Mover.Radius is zero.
// It exceeds the renderer's default near distance, so that walls next to
// the camera are never drawn closer than that.
const DefaultRadius = 2 * sector.DefaultNear

// Default is the Mover used by [Move].
var Default = Mover{}

// Move moves cam by delta using the [Default] parameters.
func Move(g *level.Graph, cam sector.Camera, delta vec.Vec2) sector.Camera {
	return Default.Move(g, cam, delta)
}

// Move moves cam by delta and returns the new camera.
//
// Portals are crossed if the floor behind them is at most StepHeight
// higher and the eye fits below the ceiling. Other walls block the camera
// at distance Radius, and the camera then slides along them. If the camera
// is not inside a live sector, it is returned unchanged.
func (m Mover) Move(g *level.Graph, cam sector.Camera, delta vec.Vec2) sector.Camera {
	if !g.HasSector(cam.Sector) {
		return cam
	}
	eye := cam.Z - g.Sector(cam.Sector).Floor
	step := m.StepHeight
	if step <= 0 {
		step = eye / 2
	}
	radius := m.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}

	cur := cam.Sector
	p := cam.Pos
	d := delta
	for range maxSteps {
		if d.Length() < minMove {
			break
		}
		c, ok := m.firstContact(g, cur, p, d, eye, step, radius)
		if !ok {
			p = p.Add(d)
			break
		}

		if c.next != level.NoSector {
			// continue from the portal in the neighbouring sector
			p = p.Add(d.Mul(c.t))
			d = d.Mul(1 - c.t)
			cur = c.next
			continue
		}

		// stop short of the wall and slide along it
		stop := max(c.t-skin/d.Length(), 0)
		p = p.Add(d.Mul(stop))
		rest := d.Mul(1 - stop)
		a, b := g.WallPoints(c.wall)
		dir := b.Sub(a)
		dir = dir.Mul(1 / dir.Length())
		d = dir.Mul(rest.Dot(dir))
	}

	if !geometry.PointInPolygon(p, g.Polygon(cur)) {
		s, ok := g.Locate(p)
		if !ok {
			return cam
		}
		cur = s
	}

	cam.Pos = p
	cam.Sector = cur
	cam.Z = g.Sector(cur).Floor + eye
	return cam
}

// contact is the first wall met while moving through a sector.
type contact struct {
	wall level.WallID
	t    float64        // fraction of the movement where the wall is met
	next level.SectorID // sector behind a passable portal, or NoSector
}

// firstContact finds the first wall met by the segment from p to p+d in
// sector s. Passable portals are met where the segment crosses them.
// Other walls are met where the segment comes within radius of them; a
// camera which is already closer is stopped at once. Reaching a wall at
// the end of the segment does not count.
func (m Mover) firstContact(g *level.Graph, s level.SectorID, p, d vec.Vec2, eye, step, radius float64) (contact, bool) {
	best := contact{wall: level.NoWall, t: 2}
	for _, w := range g.Walls(s) {
		a, b := g.WallPoints(w)
		e := b.Sub(a)

		// The interior is to the right of the wall, so only movement to
		// the left approaches it.
		if geometry.Cross(e, d) <= 0 {
			continue
		}

		if next, ok := m.passable(g, w, eye, step); ok {
			t, u := intersect(a, e, p, d)
			if t >= 0 && t < 1 && u >= 0 && u <= 1 && t < best.t {
				best = contact{wall: w, t: t, next: next}
			}
			continue
		}

		// Move the wall inwards by radius and extend it by radius at
		// both ends.
		l := e.Length()
		along := e.Mul(radius / l)
		inward := vec.Vec2{X: along.Y, Y: -along.X}
		t, u := intersect(a.Add(inward).Sub(along), e.Add(along.Mul(2)), p, d)
		switch {
		case t >= 1:
			continue
		case t >= 0:
			if u < 0 || u > 1 {
				continue
			}
		default:
			// already past the offset line
			inside := geometry.Cross(e, a.Sub(p)) >= 0
			if !inside || geometry.SegmentDistance(p, a, b) >= radius {
				continue
			}
			t = 0
		}
		if t < best.t {
			best = contact{wall: w, t: t, next: level.NoSector}
		}
	}
	return best, best.wall != level.NoWall
}

// intersect returns the fractions t along d and u along e at which the
// lines p + t*d and a + u*e meet. The lines must not be parallel.
func intersect(a, e, p, d vec.Vec2) (t, u float64) {
	denom := geometry.Cross(e, d)
	ap := a.Sub(p)
	return geometry.Cross(e, ap) / denom, geometry.Cross(d, ap) / denom
}

// passable reports whether the camera can pass through wall w, and returns
// the sector behind it.
func (m Mover) passable(g *level.Graph, w level.WallID, eye, step float64) (level.SectorID, bool) {
	next, ok := g.Neighbor(w)
	if !ok {
		return level.NoSector, false
	}
	from := g.Sector(g.Wall(w).Sector)
	to := g.Sector(next)

	if to.Floor-from.Floor > step {
		return level.NoSector, false
	}
	top := min(from.Ceil, to.Ceil)
	if max(from.Floor, to.Floor)+eye+m.HeadRoom > top {
		return level.NoSector, false
	}
	return next, true
}

const (
	// maxSteps limits the number of wall contacts handled in one move.
	maxSteps = 8

	// minMove is the shortest movement which is carried out.
	minMove = 1e-9

	// skin is the extra distance kept from blocking walls, to absorb
	// rounding errors.
	skin = 1e-6
)
