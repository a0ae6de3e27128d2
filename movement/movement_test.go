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

package movement

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector"
	"seehuhn.de/go/sector/geometry"
	"seehuhn.de/go/sector/level"
)

// Sectors of the test level.
const (
	roomA level.SectorID = iota // the starting room, floor 0
	roomB                       // east of A, one small step up
	roomC                       // north of A, too high to climb
	roomD                       // west of A, low ceiling
	roomE                       // east of B, another small step up
)

func box(t *testing.T, g *level.Graph, x0, y0, x1, y1, floor, ceil float64) {
	t.Helper()
	loop := []level.VertexID{
		g.FindOrAddVertex(vec.Vec2{X: x0, Y: y0}),
		g.FindOrAddVertex(vec.Vec2{X: x0, Y: y1}),
		g.FindOrAddVertex(vec.Vec2{X: x1, Y: y1}),
		g.FindOrAddVertex(vec.Vec2{X: x1, Y: y0}),
	}
	_, err := g.AddSector(level.SectorSpec{Loop: loop, Floor: floor, Ceil: ceil, Light: 1})
	if err != nil {
		t.Fatal(err)
	}
}

func testLevel(t *testing.T) *level.Graph {
	t.Helper()
	b := level.NewBuilder()
	box(t, b.Graph, 0, 0, 4, 4, 0, 4)
	box(t, b.Graph, 4, 0, 8, 4, 0.5, 4)
	box(t, b.Graph, 0, 4, 4, 8, 1.5, 4)
	box(t, b.Graph, -4, 0, 0, 4, 0, 2.5)
	box(t, b.Graph, 8, 0, 12, 4, 1, 4)
	if n := b.AutoLink(); n != 4 {
		t.Fatalf("%d portals, want 4", n)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestMove(t *testing.T) {
	g := testLevel(t)
	start := sector.Camera{Pos: vec.Vec2{X: 2, Y: 2}, Z: 2, Yaw: 0.5, Sector: roomA}

	const skinTol = 1e-5
	tests := []struct {
		name   string
		mover  Mover
		delta  vec.Vec2
		pos    vec.Vec2
		sector level.SectorID
		z      float64
	}{
		{"inside", Default, vec.Vec2{X: 1, Y: 0.5}, vec.Vec2{X: 3, Y: 2.5}, roomA, 2},
		{"step up", Default, vec.Vec2{X: 3}, vec.Vec2{X: 5, Y: 2}, roomB, 2.5},
		{"two portals", Default, vec.Vec2{X: 8}, vec.Vec2{X: 10, Y: 2}, roomE, 3},
		{"too high", Default, vec.Vec2{Y: 3}, vec.Vec2{X: 2, Y: 3.8}, roomA, 2},
		{"slide", Default, vec.Vec2{X: 1, Y: 3}, vec.Vec2{X: 3, Y: 3.8}, roomA, 2},
		{"solid wall", Default, vec.Vec2{Y: -5}, vec.Vec2{X: 2, Y: 0.2}, roomA, 2},
		{"step and slide", Default, vec.Vec2{X: 5, Y: -3}, vec.Vec2{X: 7, Y: 0.2}, roomB, 2.5},
		{"low ceiling", Default, vec.Vec2{X: -3}, vec.Vec2{X: -1, Y: 2}, roomD, 2},
		{"head room", Mover{HeadRoom: 1}, vec.Vec2{X: -3}, vec.Vec2{X: 0.2, Y: 2}, roomA, 2},
		{"small steps", Mover{StepHeight: 0.25}, vec.Vec2{X: 3}, vec.Vec2{X: 3.8, Y: 2}, roomA, 2},
		{"large radius", Mover{Radius: 1}, vec.Vec2{Y: -5}, vec.Vec2{X: 2, Y: 1}, roomA, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.mover.Move(g, start, tc.delta)
			if got.Pos.Sub(tc.pos).Length() > skinTol {
				t.Errorf("position %v, want %v", got.Pos, tc.pos)
			}
			if got.Sector != tc.sector {
				t.Errorf("sector %d, want %d", got.Sector, tc.sector)
			}
			if math.Abs(got.Z-tc.z) > 1e-12 {
				t.Errorf("eye at %g, want %g", got.Z, tc.z)
			}
			if got.Yaw != start.Yaw || got.Pitch != start.Pitch {
				t.Error("orientation changed")
			}
			if s, ok := g.Locate(got.Pos); !ok || g.Sector(s).Floor != g.Sector(got.Sector).Floor {
				t.Errorf("camera at %v is outside sector %d", got.Pos, got.Sector)
			}
		})
	}
}

func TestMoveStaysInside(t *testing.T) {
	g := testLevel(t)
	cam := sector.Camera{Pos: vec.Vec2{X: 2, Y: 2}, Z: 2, Sector: roomA}
	for i := range 500 {
		a := float64(i) * 2.39996
		delta := vec.Vec2{X: 1.7 * math.Cos(a), Y: 1.7 * math.Sin(a)}
		cam = Move(g, cam, delta)
		s, ok := g.Locate(cam.Pos)
		if !ok {
			t.Fatalf("step %d: camera left the map at %v", i, cam.Pos)
		}
		if g.Sector(s).Floor != g.Sector(cam.Sector).Floor {
			t.Fatalf("step %d: camera at %v in sector %d, tracked as %d", i, cam.Pos, s, cam.Sector)
		}
		if eye := cam.Z - g.Sector(cam.Sector).Floor; math.Abs(eye-2) > 1e-9 {
			t.Fatalf("step %d: eye height %g", i, eye)
		}
	}
}

func TestMoveKeepsDistance(t *testing.T) {
	if DefaultRadius < sector.DefaultNear {
		t.Fatalf("DefaultRadius %g is below the near distance %g", DefaultRadius, sector.DefaultNear)
	}

	g := testLevel(t)
	for _, m := range []Mover{Default, {Radius: 0.5}, {Radius: 0.05, HeadRoom: 1}} {
		radius := m.Radius
		if radius == 0 {
			radius = DefaultRadius
		}
		cam := sector.Camera{Pos: vec.Vec2{X: 2, Y: 2}, Z: 2, Sector: roomA}
		for i := range 500 {
			a := float64(i) * 2.39996
			l := 0.3 + 2*math.Abs(math.Sin(float64(i)*0.7))
			cam = m.Move(g, cam, vec.Vec2{X: l * math.Cos(a), Y: l * math.Sin(a)})

			eye := cam.Z - g.Sector(cam.Sector).Floor
			for _, w := range g.Walls(cam.Sector) {
				if _, ok := m.passable(g, w, eye, eye/2); ok {
					continue
				}
				a, b := g.WallPoints(w)
				if d := geometry.SegmentDistance(cam.Pos, a, b); d < radius-1e-6 {
					t.Fatalf("radius %g, step %d: camera at %v is %g from wall %d",
						radius, i, cam.Pos, d, w)
				}
			}
		}
	}
}

func TestMoveOutside(t *testing.T) {
	g := testLevel(t)
	cam := sector.Camera{Pos: vec.Vec2{X: 2, Y: 2}, Z: 2, Sector: level.NoSector}
	if got := Move(g, cam, vec.Vec2{X: 1}); got != cam {
		t.Errorf("camera without sector moved to %v", got)
	}
}
