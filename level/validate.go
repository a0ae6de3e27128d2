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

	"seehuhn.de/go/sector/geometry"
)

// ErrMalformedGraph is matched by every error returned from Validate.
var ErrMalformedGraph = errors.New("malformed level graph")

// MalformedGraphError describes one violation of the graph invariants.
type MalformedGraphError struct {
	Sector SectorID // NoSector if the problem is not tied to a sector
	Wall   WallID   // NoWall if the problem is not tied to a wall
	Reason string
}

func (e *MalformedGraphError) Error() string {
	switch {
	case e.Sector != NoSector && e.Wall != NoWall:
		return fmt.Sprintf("sector %d, wall %d: %s", e.Sector, e.Wall, e.Reason)
	case e.Sector != NoSector:
		return fmt.Sprintf("sector %d: %s", e.Sector, e.Reason)
	case e.Wall != NoWall:
		return fmt.Sprintf("wall %d: %s", e.Wall, e.Reason)
	}
	return e.Reason
}

// Is makes errors.Is(err, ErrMalformedGraph) succeed.
func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph
}

// Validate checks the structural invariants of the graph. All violations
// are reported, joined with errors.Join. The result is nil if the graph
// is well-formed.
func (g *Graph) Validate() error {
	var errs []error
	report := func(s SectorID, w WallID, format string, args ...any) {
		errs = append(errs, &MalformedGraphError{
			Sector: s,
			Wall:   w,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	for i := range g.sectors {
		s := SectorID(i)
		sec := &g.sectors[i]
		if sec.removed {
			continue
		}

		if !(sec.Floor < sec.Ceil) {
			report(s, NoWall, "floor %g is not below ceiling %g", sec.Floor, sec.Ceil)
		}
		if sec.Light < 0 || sec.Light > 1 {
			report(s, NoWall, "light level %g outside [0, 1]", sec.Light)
		}

		n := len(sec.Walls)
		if n < 3 {
			report(s, NoWall, "only %d walls", n)
			continue
		}

		loopOK := true
		for j, w := range sec.Walls {
			if !g.HasWall(w) {
				report(s, w, "wall does not exist")
				loopOK = false
				continue
			}
			wall := &g.walls[w]
			if wall.Sector != s {
				report(s, w, "wall is owned by sector %d", wall.Sector)
				loopOK = false
			}
			if !g.HasVertex(wall.V1) || !g.HasVertex(wall.V2) {
				report(s, w, "wall references a missing vertex")
				loopOK = false
				continue
			}
			next := sec.Walls[(j+1)%n]
			if g.HasWall(next) && g.walls[next].V1 != wall.V2 {
				report(s, w, "wall ends at vertex %d but the next wall starts at %d",
					wall.V2, g.walls[next].V1)
				loopOK = false
			}
		}
		if !loopOK {
			continue
		}

		poly := g.Polygon(s)
		if err := geometry.SimplePolygon(poly); err != nil {
			report(s, NoWall, "footprint: %v", err)
		} else if !geometry.Clockwise(poly) {
			report(s, NoWall, "footprint is wound counter-clockwise")
		}
	}

	for i := range g.walls {
		w := WallID(i)
		wall := &g.walls[i]
		if wall.removed || wall.Portal == NoWall {
			continue
		}
		if !g.HasSector(wall.Sector) {
			report(NoSector, w, "wall is owned by missing sector %d", wall.Sector)
			continue
		}
		p := wall.Portal
		if !g.HasWall(p) {
			report(wall.Sector, w, "portal to missing wall %d", p)
			continue
		}
		other := &g.walls[p]
		if other.Portal != w {
			report(wall.Sector, w, "portal to wall %d is not reciprocated", p)
		}
		if other.Sector == wall.Sector {
			report(wall.Sector, w, "portal to wall %d of the same sector", p)
		}
		if other.V1 != wall.V2 || other.V2 != wall.V1 {
			report(wall.Sector, w, "portal to wall %d does not share reversed vertices", p)
		}
	}

	return errors.Join(errs...)
}

// Builder assembles a graph from vertices and sector loops.
// The embedded Graph exposes the construction methods; Build validates
// the result.
type Builder struct {
	*Graph
}

// NewBuilder returns a builder for an empty graph.
func NewBuilder() *Builder {
	return &Builder{Graph: New()}
}

// Build validates the graph under construction and returns it.
// The builder must not be used afterwards.
func (b *Builder) Build() (*Graph, error) {
	g := b.Graph
	b.Graph = nil
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
