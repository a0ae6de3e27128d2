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

// box adds an axis-aligned rectangular sector with a clockwise outline.
func box(t *testing.T, g *Graph, x0, y0, x1, y1, floor, ceil float64) SectorID {
	t.Helper()
	loop := []VertexID{
		g.FindOrAddVertex(vec.Vec2{X: x0, Y: y0}),
		g.FindOrAddVertex(vec.Vec2{X: x0, Y: y1}),
		g.FindOrAddVertex(vec.Vec2{X: x1, Y: y1}),
		g.FindOrAddVertex(vec.Vec2{X: x1, Y: y0}),
	}
	s, err := g.AddSector(SectorSpec{
		Loop:    loop,
		Floor:   floor,
		Ceil:    ceil,
		Light:   1,
		Default: WallTextures{Middle: 1, Upper: 2, Lower: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// twoRooms returns two unit-height rooms side by side, joined by a portal.
func twoRooms(t *testing.T) *Graph {
	t.Helper()
	b := NewBuilder()
	box(t, b.Graph, 0, 0, 1, 1, 0, 1)
	box(t, b.Graph, 1, 0, 2, 1, 0, 0.5)
	if n := b.AutoLink(); n != 1 {
		t.Fatalf("AutoLink created %d portals, want 1", n)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNeighbor(t *testing.T) {
	g := twoRooms(t)

	var portals int
	for s := range g.Sectors() {
		for _, w := range g.Walls(s) {
			n, ok := g.Neighbor(w)
			if !ok {
				continue
			}
			portals++
			if n == s {
				t.Errorf("wall %d of sector %d leads back to its own sector", w, s)
			}
			back, ok := g.Neighbor(g.Wall(w).Portal)
			if !ok || back != s {
				t.Errorf("portal %d is not symmetric", w)
			}
		}
	}
	if portals != 2 {
		t.Errorf("found %d portal sides, want 2", portals)
	}
}

func TestWallsClosedLoop(t *testing.T) {
	g := twoRooms(t)
	for s := range g.Sectors() {
		walls := g.Walls(s)
		for i, w := range walls {
			next := walls[(i+1)%len(walls)]
			if g.Wall(w).V2 != g.Wall(next).V1 {
				t.Errorf("sector %d: wall %d does not connect to wall %d", s, w, next)
			}
		}
	}
}

func TestLocate(t *testing.T) {
	g := twoRooms(t)
	cases := []struct {
		p    vec.Vec2
		want SectorID
		ok   bool
	}{
		{vec.Vec2{X: 0.5, Y: 0.5}, 0, true},
		{vec.Vec2{X: 1.5, Y: 0.5}, 1, true},
		{vec.Vec2{X: 0, Y: 0}, 0, true},
		{vec.Vec2{X: 3, Y: 0.5}, NoSector, false},
	}
	for _, c := range cases {
		got, ok := g.Locate(c.p)
		if got != c.want || ok != c.ok {
			t.Errorf("Locate(%v) = %d, %t, want %d, %t", c.p, got, ok, c.want, c.ok)
		}
	}
}

func TestBounds(t *testing.T) {
	g := twoRooms(t)
	r := g.Bounds()
	if r.LLx != 0 || r.LLy != 0 || r.URx != 2 || r.URy != 1 {
		t.Errorf("wrong bounds %v", r)
	}
	if r := New().Bounds(); r.LLx != 0 || r.URx != 0 {
		t.Errorf("empty graph has bounds %v", r)
	}
}

func TestPortals(t *testing.T) {
	g := twoRooms(t)
	var n int
	for a, b := range g.Portals() {
		if a >= b {
			t.Errorf("portal (%d, %d) not ordered", a, b)
		}
		n++
	}
	if n != 1 {
		t.Errorf("got %d portals, want 1", n)
	}
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name   string
		build  func(t *testing.T) *Graph
		reason string // empty for valid graphs
	}
	cases := []testCase{
		{
			name:  "valid",
			build: twoRooms,
		},
		{
			name: "FloorAboveCeiling",
			build: func(t *testing.T) *Graph {
				g := New()
				box(t, g, 0, 0, 1, 1, 2, 1)
				return g
			},
			reason: "floor",
		},
		{
			name: "CounterClockwise",
			build: func(t *testing.T) *Graph {
				g := New()
				loop := []VertexID{
					g.AddVertex(vec.Vec2{X: 0, Y: 0}),
					g.AddVertex(vec.Vec2{X: 1, Y: 0}),
					g.AddVertex(vec.Vec2{X: 1, Y: 1}),
				}
				if _, err := g.AddSector(SectorSpec{Loop: loop, Ceil: 1, Light: 1}); err != nil {
					t.Fatal(err)
				}
				return g
			},
			reason: "counter-clockwise",
		},
		{
			name: "SelfIntersecting",
			build: func(t *testing.T) *Graph {
				g := New()
				loop := []VertexID{
					g.AddVertex(vec.Vec2{X: 0, Y: 0}),
					g.AddVertex(vec.Vec2{X: 1, Y: 1}),
					g.AddVertex(vec.Vec2{X: 1, Y: 0}),
					g.AddVertex(vec.Vec2{X: 0, Y: 1}),
				}
				if _, err := g.AddSector(SectorSpec{Loop: loop, Ceil: 1, Light: 1}); err != nil {
					t.Fatal(err)
				}
				return g
			},
			reason: "footprint",
		},
		{
			name: "BrokenLoop",
			build: func(t *testing.T) *Graph {
				g := New()
				box(t, g, 0, 0, 1, 1, 0, 1)
				g.walls[1].V1 = g.walls[3].V1
				return g
			},
			reason: "next wall",
		},
		{
			name: "OneSidedPortal",
			build: func(t *testing.T) *Graph {
				g := twoRooms(t)
				for a := range g.Portals() {
					g.walls[a].Portal = NoWall
				}
				return g
			},
			reason: "not reciprocated",
		},
		{
			name: "PortalSameSector",
			build: func(t *testing.T) *Graph {
				g := New()
				box(t, g, 0, 0, 1, 1, 0, 1)
				g.walls[0].Portal = 2
				g.walls[2].Portal = 0
				return g
			},
			reason: "same sector",
		},
		{
			name: "PortalMissingWall",
			build: func(t *testing.T) *Graph {
				g := New()
				box(t, g, 0, 0, 1, 1, 0, 1)
				g.walls[0].Portal = 99
				return g
			},
			reason: "missing wall",
		},
		{
			name: "MissingVertex",
			build: func(t *testing.T) *Graph {
				g := New()
				box(t, g, 0, 0, 1, 1, 0, 1)
				g.walls[0].V2 = 42
				g.walls[1].V1 = 42
				return g
			},
			reason: "missing vertex",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.build(t).Validate()
			if c.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformedGraph) {
				t.Fatalf("got %v, want ErrMalformedGraph", err)
			}
			var mErr *MalformedGraphError
			if !errors.As(err, &mErr) {
				t.Fatalf("error %v carries no *MalformedGraphError", err)
			}
			if !containsReason(err, c.reason) {
				t.Errorf("error %q does not mention %q", err, c.reason)
			}
		})
	}
}

func containsReason(err error, s string) bool {
	msg := err.Error()
	for i := 0; i+len(s) <= len(msg); i++ {
		if msg[i:i+len(s)] == s {
			return true
		}
	}
	return false
}

func TestValidateReportsAll(t *testing.T) {
	g := New()
	box(t, g, 0, 0, 1, 1, 2, 1)
	box(t, g, 5, 5, 6, 6, 3, 3)

	err := g.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected a joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("got %d violations, want 2", n)
	}
}

func TestLink(t *testing.T) {
	g := New()
	box(t, g, 0, 0, 1, 1, 0, 1)
	box(t, g, 1, 0, 2, 1, 0, 1)

	// wall 2 of A runs (1,1)→(1,0), wall 0 of B runs (1,0)→(1,1)
	a, b := g.Walls(0)[2], g.Walls(1)[0]
	if err := g.Link(a, b); err != nil {
		t.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}

	if err := g.Link(g.Walls(0)[0], g.Walls(1)[1]); !errors.Is(err, ErrNotReversed) {
		t.Errorf("got %v, want ErrNotReversed", err)
	}
	if err := g.Link(g.Walls(0)[0], g.Walls(0)[2]); !errors.Is(err, ErrSameSector) {
		t.Errorf("got %v, want ErrSameSector", err)
	}

	if err := g.Unlink(b); err != nil {
		t.Fatal(err)
	}
	if g.Wall(a).IsPortal() || g.Wall(b).IsPortal() {
		t.Error("Unlink left a portal behind")
	}
}

func TestSplitWall(t *testing.T) {
	g := twoRooms(t)
	var a WallID
	for w := range g.Portals() {
		a = w
	}
	p1, p2 := g.WallPoints(a)
	mid := vec.Vec2{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}

	v, err := g.SplitWall(a, mid)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if g.Vertex(v) != mid {
		t.Errorf("new vertex at %v, want %v", g.Vertex(v), mid)
	}

	var n int
	for range g.Portals() {
		n++
	}
	if n != 2 {
		t.Errorf("got %d portals after split, want 2", n)
	}
	for s := range g.Sectors() {
		if len(g.Walls(s)) != 5 {
			t.Errorf("sector %d has %d walls, want 5", s, len(g.Walls(s)))
		}
	}
}

func TestRemoveWall(t *testing.T) {
	g := New()
	box(t, g, 0, 0, 2, 1, 0, 1)
	first := g.Walls(0)[1] // (0,1)→(2,1)
	if _, err := g.SplitWall(first, vec.Vec2{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if len(g.Walls(0)) != 5 {
		t.Fatalf("split produced %d walls", len(g.Walls(0)))
	}

	if err := g.RemoveWall(first); err != nil {
		t.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(g.Walls(0)) != 4 {
		t.Errorf("got %d walls, want 4", len(g.Walls(0)))
	}
	if _, b := g.WallPoints(first); b != (vec.Vec2{X: 2, Y: 1}) {
		t.Errorf("merged wall ends at %v", b)
	}

	tri := New()
	loop := []VertexID{
		tri.AddVertex(vec.Vec2{X: 0, Y: 0}),
		tri.AddVertex(vec.Vec2{X: 0, Y: 1}),
		tri.AddVertex(vec.Vec2{X: 1, Y: 0}),
	}
	if _, err := tri.AddSector(SectorSpec{Loop: loop, Ceil: 1}); err != nil {
		t.Fatal(err)
	}
	if err := tri.RemoveWall(0); !errors.Is(err, ErrTooFewWalls) {
		t.Errorf("got %v, want ErrTooFewWalls", err)
	}
}

func TestRemoveSector(t *testing.T) {
	g := twoRooms(t)
	if err := g.RemoveSector(1); err != nil {
		t.Fatal(err)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if g.HasSector(1) {
		t.Error("sector 1 still alive")
	}
	for _, w := range g.Walls(0) {
		if g.Wall(w).IsPortal() {
			t.Errorf("wall %d still a portal", w)
		}
	}
	if err := g.RemoveSector(1); !errors.Is(err, ErrUnknownSector) {
		t.Errorf("second removal: got %v", err)
	}
}

func TestEqual(t *testing.T) {
	a := twoRooms(t)
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone differs")
	}

	if err := b.SetHeights(1, 0, 0.75); err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Error("height change not detected")
	}

	c := a.Clone()
	if err := c.MoveVertex(0, vec.Vec2{X: -1, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("vertex move not detected")
	}

	l := a.Clone()
	if err := l.SetLight(0, 0.5); err != nil {
		t.Fatal(err)
	}
	if a.Equal(l) {
		t.Error("light change not detected")
	}
	if err := l.SetLight(7, 0.5); !errors.Is(err, ErrUnknownSector) {
		t.Errorf("SetLight on missing sector: got %v", err)
	}

	// a tombstone does not matter
	d := New()
	box(t, d, 10, 10, 11, 11, 0, 1)
	box(t, d, 0, 0, 1, 1, 0, 1)
	box(t, d, 1, 0, 2, 1, 0, 0.5)
	d.AutoLink()
	if err := d.RemoveSector(0); err != nil {
		t.Fatal(err)
	}
	if !a.Equal(d) {
		t.Error("graph with tombstone differs")
	}
}

func TestCloneIndependent(t *testing.T) {
	a := twoRooms(t)
	b := a.Clone()
	if _, err := b.SplitWall(b.Walls(0)[0], vec.Vec2{X: 0, Y: 0.5}); err != nil {
		t.Fatal(err)
	}
	if len(a.Walls(0)) != 4 {
		t.Error("modifying the clone changed the original")
	}
}
