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
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// HUD draws lines of status text over a frame.
type HUD struct {
	Face   font.Face
	Color  color.RGBA
	Origin image.Point // top left corner of the first line
}

// NewHUD returns a HUD using a small fixed-width font.
func NewHUD() *HUD {
	return &HUD{
		Face:   basicfont.Face7x13,
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Origin: image.Pt(4, 4),
	}
}

// Draw writes the given lines to dst, one below the other.
func (h *HUD) Draw(dst draw.Image, lines ...string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(h.Color),
		Face: h.Face,
	}
	m := h.Face.Metrics()
	y := fixed.I(h.Origin.Y) + m.Ascent
	for _, line := range lines {
		d.Dot = fixed.Point26_6{X: fixed.I(h.Origin.X), Y: y}
		d.DrawString(line)
		y += m.Height
	}
}

// StatusLines formats the camera position and frame statistics for display.
func StatusLines(cam Camera, st Stats) []string {
	return []string{
		fmt.Sprintf("pos %.1f,%.1f z %.1f sector %d", cam.Pos.X, cam.Pos.Y, cam.Z, cam.Sector),
		fmt.Sprintf("fragments %d depth %d walls %d", st.Fragments, st.MaxDepth, st.WallsDrawn),
	}
}
