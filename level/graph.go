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

// Package level implements the sector graph of a map.
//
// Vertices, walls and sectors live in dense arrays and refer to each other
// by integer identifiers. A portal is a pair of walls in two different
// sectors which share the same two vertices in reverse order and point at
// each other. Removing an element leaves a tombstone, so that identifiers
// held elsewhere stay valid or become detectably dead.
//
// Sector boundaries are wound clockwise (map space has y pointing up), so
// that the interior of a sector lies to the right of each of its walls.
package level

import (
	"iter"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector/geometry"
)

// VertexID identifies a vertex of a Graph.
type VertexID int32

// WallID identifies a wall of a Graph.
type WallID int32

// SectorID identifies a sector of a Graph.
type SectorID int32

// TextureID names an entry in the renderer's texture table.
type TextureID uint16

const (
	// NoWall marks a wall without a portal.
	NoWall WallID = -1

	// NoSector is returned where no sector applies.
	NoSector SectorID = -1

	// NoTexture selects the renderer's fallback texture.
	NoTexture TextureID = 0
)

// Wall is a directed boundary segment of a sector.
type Wall struct {
	V1, V2 VertexID
	Sector SectorID // owning sector
	Portal WallID   // paired wall in the neighbouring sector, or NoWall

	Middle TextureID // texture of a solid wall
	Upper  TextureID // strip above a portal opening
	Lower  TextureID // strip below a portal opening

	removed bool
}

// IsPortal reports whether the wall links to a neighbouring sector.
func (w Wall) IsPortal() bool {
	return w.Portal != NoWall
}

// Sector is a vertical prism bounded by a closed loop of walls.
type Sector struct {
	Walls []WallID // boundary order; wall i ends where wall i+1 starts

	Floor float64
	Ceil  float64
	Light float64 // 0 (dark) to 1 (full brightness)

	FloorTexture TextureID
	CeilTexture  TextureID

	removed bool
}

// Graph is the set of sectors of a map, together with the walls and
// vertices they are built from.
//
// A Graph is not safe for concurrent use. The renderer only reads it; all
// modifications must happen between frames.
type Graph struct {
	vertices []vec.Vec2
	walls    []Wall
	sectors  []Sector
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Clone returns a deep copy of g. Identifiers are preserved.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		vertices: append([]vec.Vec2(nil), g.vertices...),
		walls:    append([]Wall(nil), g.walls...),
		sectors:  make([]Sector, len(g.sectors)),
	}
	for i, s := range g.sectors {
		s.Walls = append([]WallID(nil), s.Walls...)
		c.sectors[i] = s
	}
	return c
}

// NumSectors returns the number of sector slots, including removed ones.
// Valid identifiers are 0 to NumSectors()-1.
func (g *Graph) NumSectors() int {
	return len(g.sectors)
}

// NumWalls returns the number of wall slots, including removed ones.
func (g *Graph) NumWalls() int {
	return len(g.walls)
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

// HasSector reports whether s identifies a live sector.
func (g *Graph) HasSector(s SectorID) bool {
	return s >= 0 && int(s) < len(g.sectors) && !g.sectors[s].removed
}

// HasWall reports whether w identifies a live wall.
func (g *Graph) HasWall(w WallID) bool {
	return w >= 0 && int(w) < len(g.walls) && !g.walls[w].removed
}

// HasVertex reports whether v identifies a vertex.
func (g *Graph) HasVertex(v VertexID) bool {
	return v >= 0 && int(v) < len(g.vertices)
}

// Sectors iterates over the identifiers of all live sectors in order.
func (g *Graph) Sectors() iter.Seq[SectorID] {
	return func(yield func(SectorID) bool) {
		for i := range g.sectors {
			if g.sectors[i].removed {
				continue
			}
			if !yield(SectorID(i)) {
				return
			}
		}
	}
}

// Sector returns the sector with identifier s.
// The Walls slice is shared with the graph and must not be modified.
// The method panics if s is out of range.
func (g *Graph) Sector(s SectorID) Sector {
	return g.sectors[s]
}

// Walls returns the walls of sector s in boundary order.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Walls(s SectorID) []WallID {
	return g.sectors[s].Walls
}

// Wall returns the wall with identifier w.
func (g *Graph) Wall(w WallID) Wall {
	return g.walls[w]
}

// Vertex returns the position of vertex v.
func (g *Graph) Vertex(v VertexID) vec.Vec2 {
	return g.vertices[v]
}

// WallPoints returns the start and end point of wall w.
func (g *Graph) WallPoints(w WallID) (a, b vec.Vec2) {
	wall := &g.walls[w]
	return g.vertices[wall.V1], g.vertices[wall.V2]
}

// Neighbor resolves the portal of wall w to the sector on its other side.
// The second return value is false if w is a solid wall.
func (g *Graph) Neighbor(w WallID) (SectorID, bool) {
	p := g.walls[w].Portal
	if p == NoWall {
		return NoSector, false
	}
	return g.walls[p].Sector, true
}

// Polygon returns the footprint of sector s as a list of points in boundary
// order.
func (g *Graph) Polygon(s SectorID) []vec.Vec2 {
	walls := g.sectors[s].Walls
	poly := make([]vec.Vec2, len(walls))
	for i, w := range walls {
		poly[i] = g.vertices[g.walls[w].V1]
	}
	return poly
}

// Locate returns the first live sector whose footprint contains p.
func (g *Graph) Locate(p vec.Vec2) (SectorID, bool) {
	for s := range g.Sectors() {
		if geometry.PointInPolygon(p, g.Polygon(s)) {
			return s, true
		}
	}
	return NoSector, false
}

// Bounds returns the bounding rectangle of all live sectors.
func (g *Graph) Bounds() rect.Rect {
	r := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	found := false
	for s := range g.Sectors() {
		b := geometry.Bounds(g.Polygon(s))
		r.LLx = min(r.LLx, b.LLx)
		r.LLy = min(r.LLy, b.LLy)
		r.URx = max(r.URx, b.URx)
		r.URy = max(r.URy, b.URy)
		found = true
	}
	if !found {
		return rect.Rect{}
	}
	return r
}

// Portals iterates over all portals, reporting each pair of walls once
// with the smaller identifier first.
func (g *Graph) Portals() iter.Seq2[WallID, WallID] {
	return func(yield func(WallID, WallID) bool) {
		for i := range g.walls {
			w := &g.walls[i]
			if w.removed || w.Portal == NoWall || w.Portal < WallID(i) {
				continue
			}
			if !yield(WallID(i), w.Portal) {
				return
			}
		}
	}
}
