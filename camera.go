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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector/geometry"
	"seehuhn.de/go/sector/level"
)

// Camera is the point of view for one frame.
type Camera struct {
	Pos vec.Vec2 // position in map space

	// Z is the absolute height of the eye.
	Z float64

	// Yaw is the viewing direction in radians. Zero looks along +x,
	// positive values turn counter-clockwise.
	Yaw float64

	// Pitch shears the horizon line. Positive values look up.
	Pitch float64

	// Sector is the sector which contains Pos.
	Sector level.SectorID
}

// NewCamera places a camera at pos, eyeHeight above the floor of the sector
// containing pos. The result has ErrNoSector if pos is outside the map.
func NewCamera(g *level.Graph, pos vec.Vec2, eyeHeight, yaw float64) (Camera, error) {
	s, ok := g.Locate(pos)
	if !ok {
		return Camera{}, ErrNoSector
	}
	return Camera{
		Pos:    pos,
		Z:      g.Sector(s).Floor + eyeHeight,
		Yaw:    yaw,
		Sector: s,
	}, nil
}

// StartCamera places a camera at the vertex centroid of the first sector
// which contains its own centroid, looking along +x. The eye height is
// limited to half the height of that sector.
func StartCamera(g *level.Graph, eyeHeight float64) (Camera, error) {
	for s := range g.Sectors() {
		poly := g.Polygon(s)
		var c vec.Vec2
		for _, p := range poly {
			c = c.Add(p)
		}
		c = c.Mul(1 / float64(len(poly)))
		if !geometry.PointInPolygon(c, poly) {
			continue
		}
		sec := g.Sector(s)
		return Camera{
			Pos:    c,
			Z:      sec.Floor + min(eyeHeight, (sec.Ceil-sec.Floor)/2),
			Sector: s,
		}, nil
	}
	return Camera{}, ErrNoSector
}

// Forward returns the unit vector in viewing direction.
func (c Camera) Forward() vec.Vec2 {
	return vec.Vec2{X: math.Cos(c.Yaw), Y: math.Sin(c.Yaw)}
}

// Right returns the unit vector pointing to the right of the viewing
// direction.
func (c Camera) Right() vec.Vec2 {
	return vec.Vec2{X: math.Sin(c.Yaw), Y: -math.Cos(c.Yaw)}
}

// View returns the transformation from map space to view space.
// In view space, x points to the right and y is the depth along the
// viewing direction.
func (c Camera) View() matrix.Matrix {
	sin, cos := math.Sincos(c.Yaw)
	px, py := c.Pos.X, c.Pos.Y
	return matrix.Matrix{
		sin, cos,
		-cos, sin,
		-(sin*px - cos*py), -(cos*px + sin*py),
	}
}

// toView applies the view matrix m to p.
func toView(m *matrix.Matrix, p vec.Vec2) vec.Vec2 {
	x, y := m.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}
