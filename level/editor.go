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
	"seehuhn.de/go/geom/vec"
)

// Editor applies changes to a valid graph.
//
// Every operation works on a copy of the current graph. The copy is
// validated, and only if it is well-formed does it replace the current
// graph. A rejected edit leaves the editor unchanged.
type Editor struct {
	g   *Graph
	rev uint64
}

// NewEditor returns an editor for g. The graph must be valid; the editor
// keeps its own copy.
func NewEditor(g *Graph) (*Editor, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Editor{g: g.Clone()}, nil
}

// Graph returns the current graph. The caller must not modify it; it stays
// valid until the next successful edit replaces it.
func (e *Editor) Graph() *Graph {
	return e.g
}

// Revision returns the number of edits committed so far.
func (e *Editor) Revision() uint64 {
	return e.rev
}

func (e *Editor) apply(op func(g *Graph) error) error {
	g := e.g.Clone()
	if err := op(g); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	e.g = g
	e.rev++
	return nil
}

// AddSector adds a sector with the given clockwise outline. Points which
// coincide with existing vertices reuse them, and walls which run along an
// existing wall in the opposite direction are linked into portals.
func (e *Editor) AddSector(outline []vec.Vec2, spec SectorSpec) (SectorID, error) {
	s := NoSector
	err := e.apply(func(g *Graph) error {
		spec.Loop = make([]VertexID, len(outline))
		for i, p := range outline {
			spec.Loop[i] = g.FindOrAddVertex(p)
		}
		var err error
		s, err = g.AddSector(spec)
		if err != nil {
			return err
		}
		g.AutoLink()
		return nil
	})
	if err != nil {
		return NoSector, err
	}
	return s, nil
}

// RemoveSector removes sector s. Portals into s become solid walls.
func (e *Editor) RemoveSector(s SectorID) error {
	return e.apply(func(g *Graph) error {
		return g.RemoveSector(s)
	})
}

// SplitWall inserts a vertex at p into wall w.
func (e *Editor) SplitWall(w WallID, p vec.Vec2) (VertexID, error) {
	var v VertexID
	err := e.apply(func(g *Graph) error {
		var err error
		v, err = g.SplitWall(w, p)
		return err
	})
	if err != nil {
		return -1, err
	}
	return v, nil
}

// RemoveWall merges wall w with its successor.
func (e *Editor) RemoveWall(w WallID) error {
	return e.apply(func(g *Graph) error {
		return g.RemoveWall(w)
	})
}

// LinkPortal joins walls a and b into a portal.
func (e *Editor) LinkPortal(a, b WallID) error {
	return e.apply(func(g *Graph) error {
		return g.Link(a, b)
	})
}

// UnlinkPortal turns the portal through w into two solid walls.
func (e *Editor) UnlinkPortal(w WallID) error {
	return e.apply(func(g *Graph) error {
		return g.Unlink(w)
	})
}

// MoveVertex moves vertex v to p.
func (e *Editor) MoveVertex(v VertexID, p vec.Vec2) error {
	return e.apply(func(g *Graph) error {
		return g.MoveVertex(v, p)
	})
}

// SetHeights changes the floor and ceiling of sector s.
func (e *Editor) SetHeights(s SectorID, floor, ceil float64) error {
	return e.apply(func(g *Graph) error {
		return g.SetHeights(s, floor, ceil)
	})
}
