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

	"seehuhn.de/go/sector/level"
)

// Texture maps surface coordinates to colours.
// The coordinates u and v are in map units; textures repeat.
type Texture interface {
	Texel(u, v float64) color.RGBA
}

// Solid is a texture of a single colour.
type Solid color.RGBA

// Texel implements the [Texture] interface.
func (s Solid) Texel(u, v float64) color.RGBA {
	return color.RGBA(s)
}

// Checker is a checkerboard of two colours with square cells.
type Checker struct {
	A, B color.RGBA
	Size float64 // cell size in map units
}

// Texel implements the [Texture] interface.
func (c Checker) Texel(u, v float64) color.RGBA {
	size := c.Size
	if size <= 0 {
		size = 1
	}
	i := int64(math.Floor(u/size)) + int64(math.Floor(v/size))
	if i&1 == 0 {
		return c.A
	}
	return c.B
}

// ImageTexture repeats an image across a surface.
type ImageTexture struct {
	Img image.Image

	// Scale is the number of image pixels per map unit.
	// Zero means one pixel per unit.
	Scale float64
}

// Texel implements the [Texture] interface.
func (t ImageTexture) Texel(u, v float64) color.RGBA {
	b := t.Img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return fallbackColor
	}
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	x := wrap(int(math.Floor(u*scale)), w) + b.Min.X
	y := wrap(int(math.Floor(v*scale)), h) + b.Min.Y

	if img, ok := t.Img.(*image.RGBA); ok {
		i := img.PixOffset(x, y)
		return color.RGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
	}
	return color.RGBAModel.Convert(t.Img.At(x, y)).(color.RGBA)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// TextureSet maps texture identifiers to textures.
type TextureSet map[level.TextureID]Texture

// Lookup returns the texture for id. Missing textures, and the identifier
// level.NoTexture, give a plain red texture.
func (ts TextureSet) Lookup(id level.TextureID) Texture {
	if t, ok := ts[id]; ok && t != nil {
		return t
	}
	return Solid(fallbackColor)
}

// CheckerSet returns a texture set with a checkerboard for every colour.
// The second colour of each board is a darker shade of the first.
func CheckerSet(colors map[level.TextureID]color.RGBA, size float64) TextureSet {
	ts := make(TextureSet, len(colors))
	for id, c := range colors {
		ts[id] = Checker{A: c, B: shade(c, 0.8), Size: size}
	}
	return ts
}

var fallbackColor = color.RGBA{R: 255, A: 255}

// shade scales the colour channels of c by b, which must be in [0, 1].
func shade(c color.RGBA, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R)*b + 0.5),
		G: uint8(float64(c.G)*b + 0.5),
		B: uint8(float64(c.B)*b + 0.5),
		A: c.A,
	}
}
