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
	"image/color"
	"math"

	"seehuhn.de/go/sector/level"
)

// drawSpan rasterises span i of a fragment in the columns it owns.
//
// In every column the open rows of the window are split into five
// consecutive ranges: ceiling, upper wall, opening, lower wall and floor.
// For solid walls the opening is empty and the upper wall reaches down to
// the floor. Each painted range is removed from the window. Columns where
// a portal opening remains are recorded in the span, for delegate.
func (r *Renderer) drawSpan(fr fragment, i int) {
	sp := &r.spans[i]
	wall := r.g.Wall(sp.wall)
	sec := r.g.Sector(fr.sector)

	neighbour, portal := r.g.Neighbor(sp.wall)
	openTop, openBot := sec.Ceil, sec.Floor
	if portal {
		nb := r.g.Sector(neighbour)
		openTop = min(sec.Ceil, nb.Ceil)
		openBot = max(sec.Floor, nb.Floor)
	}
	solid := !portal || openTop <= openBot

	ceilTex := r.Textures.Lookup(sec.CeilTexture)
	floorTex := r.Textures.Lookup(sec.FloorTexture)
	upperTex := r.Textures.Lookup(wall.Upper)
	lowerTex := r.Textures.Lookup(wall.Lower)
	middleTex := r.Textures.Lookup(wall.Middle)
	if portal && wall.Middle == level.NoTexture {
		// a closed portal looks like its upper wall
		middleTex = upperTex
	}

	win := fr.win
	columns := 0
	for x := sp.x0; x < sp.x1; x++ {
		if r.owner[x] != i {
			continue
		}
		top, bot := win.Range(x)
		if top >= bot {
			continue
		}
		columns++

		iz, u := sp.at(x)
		depth := max(1/iz, r.Near, depthEpsilon)

		b1 := clampRow(r.rowAt(sec.Ceil, depth), top, bot)
		b4 := clampRow(r.rowAt(sec.Floor, depth), top, bot)
		b2, b3 := b4, b4
		if !solid {
			b2 = clampRow(r.rowAt(openTop, depth), top, bot)
			b3 = clampRow(r.rowAt(openBot, depth), top, bot)
		}

		r.paintPlane(x, top, b1, sec.Ceil, ceilTex, sec.Light, fr.sector)
		win.MarkDrawn(x, top, b1)

		wallTex := middleTex
		if !solid {
			wallTex = upperTex
		}
		r.paintWall(x, b1, b2, wallTex, u, sec.Ceil, depth, sec.Light, fr.sector)
		win.MarkDrawn(x, b1, b2)

		r.paintPlane(x, b4, bot, sec.Floor, floorTex, sec.Light, fr.sector)
		win.MarkDrawn(x, b4, bot)

		if !solid {
			r.paintWall(x, b3, b4, lowerTex, u, openBot, depth, sec.Light, fr.sector)
			win.MarkDrawn(x, b3, b4)

			if b2 < b3 {
				if sp.openFirst < 0 {
					sp.openFirst = x
				}
				sp.openLast = x
			}
		}
	}

	if columns > 0 {
		r.stats.WallsDrawn++
		r.stats.ColumnsPainted += columns
	}
}

// delegate hands the portal openings left by span i to the neighbouring
// sector and closes them in the current window. The child window only
// keeps the columns owned by the span.
func (r *Renderer) delegate(fr fragment, i int) {
	sp := &r.spans[i]
	win := fr.win
	switch {
	case fr.depth+1 > r.MaxDepth,
		r.stats.Fragments+r.work.Size() >= r.MaxFragments:
		r.stats.RecursionLimitReached++
	default:
		neighbour, _ := r.g.Neighbor(sp.wall)
		child := r.clips.Push(win, sp.openFirst, sp.openLast+1)
		for x := sp.openFirst; x <= sp.openLast; x++ {
			if r.owner[x] != i {
				child.Close(x)
			}
		}
		if !child.Degenerate() {
			if r.Tracer != nil {
				r.Tracer.Delegate(win, child)
			}
			r.work.Push(fragment{
				sector: neighbour,
				x0:     child.X0,
				x1:     child.X1,
				win:    child,
				depth:  fr.depth + 1,
			})
		}
	}
	for x := sp.openFirst; x <= sp.openLast; x++ {
		if r.owner[x] == i {
			win.Close(x)
		}
	}
}

// rowAt returns the screen y coordinate of height h at the given depth.
func (r *Renderer) rowAt(h, depth float64) float64 {
	return r.horizon - r.focal*(h-r.cam.Z)/depth
}

// clampRow returns the first row whose centre lies at or below y, clamped
// to [top, bot].
func clampRow(y float64, top, bot int) int {
	v := math.Ceil(y - 0.5)
	if !(v > float64(top)) {
		return top
	}
	if v > float64(bot) {
		return bot
	}
	return int(v)
}

// paintWall fills the rows [y0, y1) of column x with a vertical surface at
// the given depth. The texture v coordinate is measured downwards from the
// height vTop.
func (r *Renderer) paintWall(x, y0, y1 int, tex Texture, u, vTop, depth, light float64, s level.SectorID) {
	if y0 >= y1 {
		return
	}
	b := light * r.fade(depth)
	scale := depth / r.focal
	for y := y0; y < y1; y++ {
		z := r.cam.Z + (r.horizon-(float64(y)+0.5))*scale
		r.setPixel(x, y, shade(tex.Texel(u, vTop-z), b))
	}
	r.painted(x, y0, y1, s)
}

// paintPlane fills the rows [y0, y1) of column x with the horizontal plane
// at height h.
func (r *Renderer) paintPlane(x, y0, y1 int, h float64, tex Texture, light float64, s level.SectorID) {
	if y0 >= y1 {
		return
	}
	fwd := r.cam.Forward()
	right := r.cam.Right()
	side := (float64(x) + 0.5 - float64(r.width)/2) / r.focal
	dh := math.Abs(h - r.cam.Z)
	for y := y0; y < y1; y++ {
		dy := math.Abs(float64(y) + 0.5 - r.horizon)
		dist := farPlane
		if dy > 0 {
			dist = min(r.focal*dh/dy, farPlane)
		}
		p := r.cam.Pos.Add(fwd.Mul(dist)).Add(right.Mul(dist * side))
		r.setPixel(x, y, shade(tex.Texel(p.X, p.Y), light*r.fade(dist)))
	}
	r.painted(x, y0, y1, s)
}

func (r *Renderer) painted(x, y0, y1 int, s level.SectorID) {
	r.stats.PixelsPainted += y1 - y0
	if r.Tracer != nil {
		r.Tracer.Paint(x, y0, y1, s)
	}
}

func (r *Renderer) setPixel(x, y int, c color.RGBA) {
	i := y*r.dst.Stride + 4*x
	p := r.dst.Pix[i : i+4 : i+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = c.A
}

// fade returns the brightness factor for a surface at distance d.
func (r *Renderer) fade(d float64) float64 {
	if r.FogDistance <= 0 {
		return 1
	}
	span := r.FogDistance - r.Near
	if span <= 0 {
		if d >= r.FogDistance {
			return r.MinBrightness
		}
		return 1
	}
	t := min(max((d-r.Near)/span, 0), 1)
	return 1 - t*(1-r.MinBrightness)
}

// farPlane bounds the distance of floor and ceiling points near the
// horizon.
const farPlane = 1e6
