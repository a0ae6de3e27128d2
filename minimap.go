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
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sector/level"
)

// MinimapMode selects how the minimap is drawn.
type MinimapMode int

// These are the supported minimap modes.
const (
	MinimapOff MinimapMode = iota

	// MinimapFirstPerson centres the map on the camera and turns it so
	// that the viewing direction points up.
	MinimapFirstPerson

	// MinimapAbsolute shows the whole map with +y pointing up.
	MinimapAbsolute
)

func (m MinimapMode) String() string {
	switch m {
	case MinimapOff:
		return "off"
	case MinimapFirstPerson:
		return "first-person"
	case MinimapAbsolute:
		return "absolute"
	}
	return "unknown"
}

// Next returns the mode which follows m in the cycle off, first-person,
// absolute.
func (m MinimapMode) Next() MinimapMode {
	return (m + 1) % 3
}

// Minimap draws a top-down view of the level into a corner of the frame.
type Minimap struct {
	Mode MinimapMode

	// Area is the part of the frame covered by the minimap.
	Area image.Rectangle

	// Scale is the number of pixels per map unit in first-person mode.
	Scale float64

	// LineWidth is the width of wall lines in pixels.
	LineWidth float64

	Backdrop    color.RGBA // blended below the map; zero alpha disables it
	WallColor   color.RGBA
	PortalColor color.RGBA
	CameraColor color.RGBA

	r    *Rasteriser
	segs []vec.Vec2 // end points of the lines to stroke, in pairs
}

// NewMinimap returns a first-person minimap covering area.
func NewMinimap(area image.Rectangle) *Minimap {
	return &Minimap{
		Mode:        MinimapFirstPerson,
		Area:        area,
		Scale:       1,
		LineWidth:   1.5,
		Backdrop:    color.RGBA{A: 160},
		WallColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		PortalColor: color.RGBA{R: 200, G: 60, B: 60, A: 255},
		CameraColor: color.RGBA{R: 255, G: 220, A: 255},
		r:           NewRasteriser(rect.Rect{}),
	}
}

// Transform returns the map-to-frame transformation used for the current
// mode.
func (m *Minimap) Transform(g *level.Graph, cam Camera) matrix.Matrix {
	cx := float64(m.Area.Min.X+m.Area.Max.X) / 2
	cy := float64(m.Area.Min.Y+m.Area.Max.Y) / 2

	if m.Mode == MinimapAbsolute {
		const margin = 4
		b := g.Bounds()
		bw := max(b.URx-b.LLx, 1e-9)
		bh := max(b.URy-b.LLy, 1e-9)
		s := min((float64(m.Area.Dx())-2*margin)/bw, (float64(m.Area.Dy())-2*margin)/bh)
		s = max(s, 1e-9)
		mx := (b.LLx + b.URx) / 2
		my := (b.LLy + b.URy) / 2
		return matrix.Scale(s, -s).Translate(cx-s*mx, cy+s*my)
	}

	// the viewing direction points up, the camera's right points right
	s := m.Scale
	sin, cos := math.Sincos(cam.Yaw)
	a, b := s*sin, -s*cos
	c, d := -s*cos, -s*sin
	px, py := cam.Pos.X, cam.Pos.Y
	return matrix.Matrix{a, b, c, d, cx - a*px - c*py, cy - b*px - d*py}
}

// Draw paints the minimap onto dst.
func (m *Minimap) Draw(dst *image.RGBA, g *level.Graph, cam Camera) {
	if m.Mode == MinimapOff {
		return
	}
	area := m.Area.Intersect(dst.Rect)
	if area.Empty() {
		return
	}
	if m.Backdrop.A > 0 {
		fillRect(dst, area, m.Backdrop)
	}

	ctm := m.Transform(g, cam)
	scale := math.Hypot(ctm[0], ctm[1])

	m.r.Reset(rect.Rect{
		LLx: float64(area.Min.X), LLy: float64(area.Min.Y),
		URx: float64(area.Max.X), URy: float64(area.Max.Y),
	})
	m.r.CTM = ctm
	m.r.Width = m.LineWidth / scale
	m.r.Cap = graphics.LineCapRound

	// solid walls
	m.segs = m.segs[:0]
	for s := range g.Sectors() {
		for _, w := range g.Walls(s) {
			if g.Wall(w).IsPortal() {
				continue
			}
			a, b := g.WallPoints(w)
			m.segs = append(m.segs, a, b)
		}
	}
	m.r.Stroke(segmentPath(m.segs), blender(dst, m.WallColor))

	// portals, one line per pair
	m.segs = m.segs[:0]
	for w := range g.Portals() {
		a, b := g.WallPoints(w)
		m.segs = append(m.segs, a, b)
	}
	m.r.Width = 0.5 * m.LineWidth / scale
	m.r.Stroke(segmentPath(m.segs), blender(dst, m.PortalColor))

	// camera marker, a triangle pointing in viewing direction
	size := 5 / scale
	fwd := cam.Forward()
	right := cam.Right()
	tip := cam.Pos.Add(fwd.Mul(size))
	back := cam.Pos.Sub(fwd.Mul(size * 0.6))
	marker := polygonPath(tip,
		back.Add(right.Mul(size*0.6)),
		back.Sub(right.Mul(size*0.6)))
	m.r.FillNonZero(marker, blender(dst, m.CameraColor))
}

// segmentPath returns a path with one line for every pair of points in segs.
func segmentPath(segs []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := 0; i+1 < len(segs); i += 2 {
			if !yield(path.CmdMoveTo, segs[i:i+1]) {
				return
			}
			if !yield(path.CmdLineTo, segs[i+1:i+2]) {
				return
			}
		}
	}
}

// polygonPath returns the closed polygon through the given points.
func polygonPath(pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if len(pts) == 0 {
			return
		}
		if !yield(path.CmdMoveTo, pts[:1]) {
			return
		}
		for i := 1; i < len(pts); i++ {
			if !yield(path.CmdLineTo, pts[i:i+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// blender returns a coverage callback which blends c over dst.
func blender(dst *image.RGBA, c color.RGBA) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		i := dst.PixOffset(xMin, y)
		for _, cov := range coverage {
			blendPixel(dst.Pix[i:i+4:i+4], c, cov)
			i += 4
		}
	}
}

// blendPixel composites c, with its alpha scaled by cov, over the pixel p.
func blendPixel(p []uint8, c color.RGBA, cov float32) {
	a := cov * float32(c.A) / 255
	if a <= 0 {
		return
	}
	keep := 1 - a
	p[0] = uint8(float32(c.R)*a + float32(p[0])*keep + 0.5)
	p[1] = uint8(float32(c.G)*a + float32(p[1])*keep + 0.5)
	p[2] = uint8(float32(c.B)*a + float32(p[2])*keep + 0.5)
	p[3] = uint8(255*a + float32(p[3])*keep + 0.5)
}

func fillRect(dst *image.RGBA, area image.Rectangle, c color.RGBA) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		i := dst.PixOffset(area.Min.X, y)
		for range area.Dx() {
			blendPixel(dst.Pix[i:i+4:i+4], c, 1)
			i += 4
		}
	}
}
