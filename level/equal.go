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

// Equal reports whether g and other describe the same map.
//
// Two graphs are equal if their live sectors, taken in identifier order,
// have the same heights, light and textures, the same wall loops (point
// positions and textures), and the same portal adjacency. Identifiers
// themselves may differ, so that a graph with tombstones compares equal to
// its compacted copy.
func (g *Graph) Equal(other *Graph) bool {
	as := g.liveSectors()
	bs := other.liveSectors()
	if len(as) != len(bs) {
		return false
	}

	// position of each live sector in the enumeration, per graph
	aIdx := make(map[SectorID]int, len(as))
	for i, s := range as {
		aIdx[s] = i
	}
	bIdx := make(map[SectorID]int, len(bs))
	for i, s := range bs {
		bIdx[s] = i
	}

	for i := range as {
		sa, sb := &g.sectors[as[i]], &other.sectors[bs[i]]
		if sa.Floor != sb.Floor || sa.Ceil != sb.Ceil || sa.Light != sb.Light ||
			sa.FloorTexture != sb.FloorTexture || sa.CeilTexture != sb.CeilTexture {
			return false
		}
		if len(sa.Walls) != len(sb.Walls) {
			return false
		}
		for j := range sa.Walls {
			wa, wb := &g.walls[sa.Walls[j]], &other.walls[sb.Walls[j]]
			if g.vertices[wa.V1] != other.vertices[wb.V1] ||
				g.vertices[wa.V2] != other.vertices[wb.V2] {
				return false
			}
			if wa.Middle != wb.Middle || wa.Upper != wb.Upper || wa.Lower != wb.Lower {
				return false
			}
			if (wa.Portal == NoWall) != (wb.Portal == NoWall) {
				return false
			}
			if wa.Portal != NoWall {
				na := aIdx[g.walls[wa.Portal].Sector]
				nb := bIdx[other.walls[wb.Portal].Sector]
				if na != nb {
					return false
				}
			}
		}
	}
	return true
}

func (g *Graph) liveSectors() []SectorID {
	var res []SectorID
	for s := range g.Sectors() {
		res = append(res, s)
	}
	return res
}
