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
	"testing"

	"seehuhn.de/go/geom/vec"
)

func square(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{
		{X: x0, Y: y0},
		{X: x0, Y: y1},
		{X: x1, Y: y1},
		{X: x1, Y: y0},
	}
}

func TestEditorAddSector(t *testing.T) {
	e, err := NewEditor(New())
	if err != nil {
		t.Fatal(err)
	}

	spec := SectorSpec{Floor: 0, Ceil: 2, Light: 1}
	a, err := e.AddSector(square(0, 0, 4, 4), spec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.AddSector(square(4, 0, 8, 4), spec)
	if err != nil {
		t.Fatal(err)
	}
	if e.Revision() != 2 {
		t.Errorf("revision %d, want 2", e.Revision())
	}

	g := e.Graph()
	if g.NumVertices() != 6 {
		t.Errorf("got %d vertices, want 6", g.NumVertices())
	}
	found := false
	for _, w := range g.Walls(a) {
		if n, ok := g.Neighbor(w); ok && n == b {
			found = true
		}
	}
	if !found {
		t.Error("shared wall was not linked")
	}
}

func TestEditorRejects(t *testing.T) {
	e, err := NewEditor(New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddSector(square(0, 0, 4, 4), SectorSpec{Ceil: 2, Light: 1}); err != nil {
		t.Fatal(err)
	}
	before := e.Graph()
	rev := e.Revision()

	// counter-clockwise outline
	outline := []vec.Vec2{{X: 10, Y: 0}, {X: 12, Y: 0}, {X: 12, Y: 2}}
	_, err = e.AddSector(outline, SectorSpec{Ceil: 2, Light: 1})
	if !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("got %v, want ErrMalformedGraph", err)
	}

	// floor above ceiling
	if err := e.SetHeights(0, 3, 2); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("got %v, want ErrMalformedGraph", err)
	}

	// moving a vertex so that the outline folds over itself
	if err := e.MoveVertex(0, vec.Vec2{X: 8, Y: 2}); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("got %v, want ErrMalformedGraph", err)
	}

	if err := e.RemoveSector(7); !errors.Is(err, ErrUnknownSector) {
		t.Errorf("got %v, want ErrUnknownSector", err)
	}

	if e.Graph() != before || e.Revision() != rev {
		t.Error("rejected edits changed the editor")
	}
	if err := e.Graph().Validate(); err != nil {
		t.Error(err)
	}
}

func TestEditorPortalOps(t *testing.T) {
	e, err := NewEditor(New())
	if err != nil {
		t.Fatal(err)
	}
	spec := SectorSpec{Ceil: 2, Light: 1}
	if _, err := e.AddSector(square(0, 0, 4, 4), spec); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddSector(square(4, 0, 8, 4), spec); err != nil {
		t.Fatal(err)
	}

	var a, b WallID
	for x, y := range e.Graph().Portals() {
		a, b = x, y
	}
	if err := e.UnlinkPortal(a); err != nil {
		t.Fatal(err)
	}
	if e.Graph().Wall(b).IsPortal() {
		t.Fatal("partner still linked")
	}
	if err := e.LinkPortal(a, b); err != nil {
		t.Fatal(err)
	}

	v, err := e.SplitWall(a, vec.Vec2{X: 4, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.MoveVertex(v, vec.Vec2{X: 4, Y: 3}); err != nil {
		t.Fatal(err)
	}
	if got := e.Graph().Vertex(v); got != (vec.Vec2{X: 4, Y: 3}) {
		t.Errorf("vertex at %v", got)
	}
}

func TestNewEditorInvalid(t *testing.T) {
	g := New()
	box(t, g, 0, 0, 1, 1, 1, 0)
	if _, err := NewEditor(g); !errors.Is(err, ErrMalformedGraph) {
		t.Errorf("got %v, want ErrMalformedGraph", err)
	}
}
