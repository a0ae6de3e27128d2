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
	"testing"

	"seehuhn.de/go/sector/level"
)

func TestChecker(t *testing.T) {
	a := color.RGBA{R: 255, A: 255}
	b := color.RGBA{B: 255, A: 255}
	c := Checker{A: a, B: b, Size: 2}

	tests := []struct {
		u, v float64
		want color.RGBA
	}{
		{0.5, 0.5, a},
		{2.5, 0.5, b},
		{2.5, 2.5, a},
		{-0.5, 0.5, b},
		{-0.5, -0.5, a},
		{1.999, 3.999, b},
	}
	for _, test := range tests {
		if got := c.Texel(test.u, test.v); got != test.want {
			t.Errorf("Texel(%g, %g) = %v, want %v", test.u, test.v, got, test.want)
		}
	}
}

func TestImageTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 10, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 20, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 30, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 40, A: 255})

	gray := image.NewGray(image.Rect(5, 5, 7, 7))
	gray.SetGray(6, 5, color.Gray{Y: 99})

	tests := []struct {
		name string
		tex  ImageTexture
		u, v float64
		want uint8
	}{
		{"origin", ImageTexture{Img: img}, 0.5, 0.5, 10},
		{"x", ImageTexture{Img: img}, 1.5, 0.5, 20},
		{"y", ImageTexture{Img: img}, 0.5, 1.5, 30},
		{"wrap", ImageTexture{Img: img}, 3.5, 2.5, 20},
		{"negative", ImageTexture{Img: img}, -0.5, -0.5, 40},
		{"scale", ImageTexture{Img: img, Scale: 4}, 0.3, 0.1, 20},
		{"generic", ImageTexture{Img: gray}, 1.5, 0.5, 99},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.tex.Texel(test.u, test.v); got.R != test.want {
				t.Errorf("got %v, want R=%d", got, test.want)
			}
		})
	}
}

func TestTextureSetLookup(t *testing.T) {
	green := Solid{G: 255, A: 255}
	ts := TextureSet{1: green}

	if got := ts.Lookup(1).Texel(0, 0); got != color.RGBA(green) {
		t.Errorf("Lookup(1) = %v", got)
	}
	for _, id := range []level.TextureID{level.NoTexture, 2} {
		if got := ts.Lookup(id).Texel(3, 4); got != fallbackColor {
			t.Errorf("Lookup(%d) = %v, want fallback", id, got)
		}
	}
	if got := TextureSet(nil).Lookup(1).Texel(0, 0); got != fallbackColor {
		t.Errorf("nil set: %v", got)
	}
}

func TestCheckerSet(t *testing.T) {
	base := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	ts := CheckerSet(map[level.TextureID]color.RGBA{3: base}, 8)

	if got := ts.Lookup(3).Texel(1, 1); got != base {
		t.Errorf("first cell: %v", got)
	}
	dark := ts.Lookup(3).Texel(9, 1)
	if dark == base || dark.A != 255 {
		t.Errorf("second cell: %v", dark)
	}
}

func TestShade(t *testing.T) {
	c := color.RGBA{R: 200, G: 101, B: 0, A: 255}
	tests := []struct {
		b    float64
		want color.RGBA
	}{
		{1, c},
		{0, color.RGBA{A: 255}},
		{0.5, color.RGBA{R: 100, G: 51, A: 255}},
	}
	for _, test := range tests {
		if got := shade(c, test.b); got != test.want {
			t.Errorf("shade(%g) = %v, want %v", test.b, got, test.want)
		}
	}
}
