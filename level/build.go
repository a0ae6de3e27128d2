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

package level

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// The methods in this file modify a Graph in place and do not validate the
// result. Use an Editor to apply changes atomically to a graph which is
// handed to the renderer.

// Errors returned by the graph construction methods.
var (
	ErrUnknownVertex = errors.New("unknown vertex")
	ErrUnknownWall   = errors.New("unknown wall")
	ErrUnknownSector = errors.New("unknown sector")
	ErrNotReversed   = errors.New("walls do not share their vertices in reverse order")
	ErrSameSector    = errors.New("walls belong to the same sector")
	ErrLinked        = errors.New("wall is already part of a portal")
	ErrTooFewWalls   = errors.New("sector needs at least three walls")
)

// SectorSpec describes a sector to be added to a graph.
type SectorSpec struct {
	// Loop lists the boundary vertices in clockwise order.
	// Wall i runs from Loop[i] to Loop[(i+1)%len(Loop)].
	Loop []VertexID

	Floor float64
	Ceil  float64
	Light float64

	FloorTexture TextureID
	CeilTexture  TextureID

	// Walls optionally gives the textures for each wall, parallel to Loop.
	// Missing entries use Default.
	Walls   []WallTextures
	Default WallTextures
}

// WallTextures holds the three textures of a wall.
type WallTextures struct {
	Middle, Upper, Lower TextureID
}

// AddVertex appends a vertex and returns its identifier.
func (g *Graph) AddVertex(p vec.Vec2) VertexID {
	g.vertices = append(g.vertices, p)
	return VertexID(len(g.vertices) - 1)
}

// FindVertex returns a vertex at exactly position p, if one exists.
func (g *Graph) FindVertex(p vec.Vec2) (VertexID, bool) {
	for i, q := range g.vertices {
		if q == p {
			return VertexID(i), true
		}
	}
	return -1, false
}

// FindOrAddVertex returns the vertex at position p, adding it if needed.
func (g *Graph) FindOrAddVertex(p vec.Vec2) VertexID {
	if v, ok := g.FindVertex(p); ok {
		return v
	}
	return g.AddVertex(p)
}

// AddSector appends a sector with one solid wall per edge of spec.Loop.
func (g *Graph) AddSector(spec SectorSpec) (SectorID, error) {
	n := len(spec.Loop)
	if n < 3 {
		return NoSector, ErrTooFewWalls
	}
	for _, v := range spec.Loop {
		if !g.HasVertex(v) {
			return NoSector, fmt.Errorf("vertex %d: %w", v, ErrUnknownVertex)
		}
	}

	s := SectorID(len(g.sectors))
	walls := make([]WallID, n)
	for i, v := range spec.Loop {
		tex := spec.Default
		if i < len(spec.Walls) {
			tex = spec.Walls[i]
		}
		g.walls = append(g.walls, Wall{
			V1:     v,
			V2:     spec.Loop[(i+1)%n],
			Sector: s,
			Portal: NoWall,
			Middle: tex.Middle,
			Upper:  tex.Upper,
			Lower:  tex.Lower,
		})
		walls[i] = WallID(len(g.walls) - 1)
	}

	g.sectors = append(g.sectors, Sector{
		Walls:        walls,
		Floor:        spec.Floor,
		Ceil:         spec.Ceil,
		Light:        spec.Light,
		FloorTexture: spec.FloorTexture,
		CeilTexture:  spec.CeilTexture,
	})
	return s, nil
}

// SetHeights changes the floor and ceiling height of sector s.
func (g *Graph) SetHeights(s SectorID, floor, ceil float64) error {
	if !g.HasSector(s) {
		return fmt.Errorf("sector %d: %w", s, ErrUnknownSector)
	}
	g.sectors[s].Floor = floor
	g.sectors[s].Ceil = ceil
	return nil
}

// SetLight changes the light level of sector s.
func (g *Graph) SetLight(s SectorID, light float64) error {
	if !g.HasSector(s) {
		return fmt.Errorf("sector %d: %w", s, ErrUnknownSector)
	}
	g.sectors[s].Light = light
	return nil
}

// SetWallTextures changes the textures of wall w.
func (g *Graph) SetWallTextures(w WallID, tex WallTextures) error {
	if !g.HasWall(w) {
		return fmt.Errorf("wall %d: %w", w, ErrUnknownWall)
	}
	g.walls[w].Middle = tex.Middle
	g.walls[w].Upper = tex.Upper
	g.walls[w].Lower = tex.Lower
	return nil
}

// Link turns the walls a and b into the two sides of a portal.
func (g *Graph) Link(a, b WallID) error {
	if !g.HasWall(a) {
		return fmt.Errorf("wall %d: %w", a, ErrUnknownWall)
	}
	if !g.HasWall(b) {
		return fmt.Errorf("wall %d: %w", b, ErrUnknownWall)
	}
	wa, wb := &g.walls[a], &g.walls[b]
	if wa.Sector == wb.Sector {
		return fmt.Errorf("walls %d and %d: %w", a, b, ErrSameSector)
	}
	if wa.V1 != wb.V2 || wa.V2 != wb.V1 {
		return fmt.Errorf("walls %d and %d: %w", a, b, ErrNotReversed)
	}
	if (wa.Portal != NoWall && wa.Portal != b) || (wb.Portal != NoWall && wb.Portal != a) {
		return fmt.Errorf("walls %d and %d: %w", a, b, ErrLinked)
	}
	wa.Portal = b
	wb.Portal = a
	return nil
}

// Unlink turns the portal through wall w back into two solid walls.
// Unlinking a solid wall has no effect.
func (g *Graph) Unlink(w WallID) error {
	if !g.HasWall(w) {
		return fmt.Errorf("wall %d: %w", w, ErrUnknownWall)
	}
	p := g.walls[w].Portal
	if p == NoWall {
		return nil
	}
	g.walls[w].Portal = NoWall
	if int(p) < len(g.walls) && g.walls[p].Portal == w {
		g.walls[p].Portal = NoWall
	}
	return nil
}

// AutoLink links every pair of unlinked walls in different sectors which
// share their vertices in reverse order. It returns the number of portals
// created.
func (g *Graph) AutoLink() int {
	type edge struct{ a, b VertexID }
	open := make(map[edge]WallID)
	for i := range g.walls {
		w := &g.walls[i]
		if w.removed || w.Portal != NoWall {
			continue
		}
		open[edge{w.V1, w.V2}] = WallID(i)
	}

	count := 0
	for i := range g.walls {
		w := &g.walls[i]
		if w.removed || w.Portal != NoWall {
			continue
		}
		other, ok := open[edge{w.V2, w.V1}]
		if !ok || g.walls[other].Portal != NoWall || g.walls[other].Sector == w.Sector {
			continue
		}
		w.Portal = other
		g.walls[other].Portal = WallID(i)
		count++
	}
	return count
}

// RemoveSector deletes sector s. Portals leading into s become solid walls
// on the other side.
func (g *Graph) RemoveSector(s SectorID) error {
	if !g.HasSector(s) {
		return fmt.Errorf("sector %d: %w", s, ErrUnknownSector)
	}
	for _, w := range g.sectors[s].Walls {
		if p := g.walls[w].Portal; p != NoWall {
			g.walls[p].Portal = NoWall
		}
		g.walls[w].removed = true
		g.walls[w].Portal = NoWall
	}
	g.sectors[s].removed = true
	g.sectors[s].Walls = nil
	return nil
}

// SplitWall inserts a new vertex at p into wall w, replacing w by two walls.
// If w is a portal, the wall on the other side is split as well and the two
// halves are linked pairwise. The first half keeps the identifier w.
func (g *Graph) SplitWall(w WallID, p vec.Vec2) (VertexID, error) {
	if !g.HasWall(w) {
		return -1, fmt.Errorf("wall %d: %w", w, ErrUnknownWall)
	}
	v := g.AddVertex(p)

	partner := g.walls[w].Portal
	second := g.splitAt(w, v)
	if partner != NoWall {
		// partner runs V2→V1 of w; its first half ends at v and
		// is paired with the second half of w
		partnerSecond := g.splitAt(partner, v)
		g.walls[w].Portal = partnerSecond
		g.walls[partnerSecond].Portal = w
		g.walls[partner].Portal = second
		g.walls[second].Portal = partner
	}
	return v, nil
}

// splitAt splits wall w at vertex v and returns the identifier of the new
// second half. The second half is unlinked.
func (g *Graph) splitAt(w WallID, v VertexID) WallID {
	old := g.walls[w]
	second := old
	second.V1 = v
	second.Portal = NoWall
	g.walls = append(g.walls, second)
	id := WallID(len(g.walls) - 1)
	g.walls[w].V2 = v

	s := &g.sectors[old.Sector]
	for i, x := range s.Walls {
		if x == w {
			s.Walls = append(s.Walls[:i+1], append([]WallID{id}, s.Walls[i+1:]...)...)
			break
		}
	}
	return id
}

// RemoveWall merges wall w with the following wall of its sector by
// dropping the vertex between them. Both walls must be solid.
func (g *Graph) RemoveWall(w WallID) error {
	if !g.HasWall(w) {
		return fmt.Errorf("wall %d: %w", w, ErrUnknownWall)
	}
	s := &g.sectors[g.walls[w].Sector]
	n := len(s.Walls)
	if n <= 3 {
		return fmt.Errorf("wall %d: %w", w, ErrTooFewWalls)
	}
	idx := -1
	for i, x := range s.Walls {
		if x == w {
			idx = i
			break
		}
	}
	next := s.Walls[(idx+1)%n]
	if g.walls[w].Portal != NoWall || g.walls[next].Portal != NoWall {
		return fmt.Errorf("wall %d: %w", w, ErrLinked)
	}

	g.walls[w].V2 = g.walls[next].V2
	g.walls[next].removed = true
	j := (idx + 1) % n
	s.Walls = append(s.Walls[:j], s.Walls[j+1:]...)
	return nil
}

// MoveVertex changes the position of vertex v. All walls using v follow.
func (g *Graph) MoveVertex(v VertexID, p vec.Vec2) error {
	if !g.HasVertex(v) {
		return fmt.Errorf("vertex %d: %w", v, ErrUnknownVertex)
	}
	g.vertices[v] = p
	return nil
}
