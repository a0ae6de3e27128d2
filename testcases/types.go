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

package testcases

import (
	"image/color"
	"slices"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector/geometry"
	"seehuhn.de/go/sector/level"
)

// TestCase is a level together with a starting point of view.
type TestCase struct {
	Name   string       // lowercase a-z and _ only
	Level  *level.Graph // shared between test cases, must not be modified
	Start  vec.Vec2     // camera position in map space
	EyeZ   float64      // eye height above the floor of the starting sector
	Yaw    float64      // viewing direction in radians
	Pitch  float64      // horizon shear, positive looks up
	Width  int          // frame width in pixels
	Height int          // frame height in pixels
}

// Texture identifiers used by the test levels.
const (
	TexWall level.TextureID = iota + 1
	TexUpper
	TexLower
	TexFloor
	TexCeil
	TexPillar
)

// Colors gives the base colour of every texture used by the test levels.
var Colors = map[level.TextureID]color.RGBA{
	TexWall:   {R: 180, G: 170, B: 150, A: 255},
	TexUpper:  {R: 120, G: 140, B: 190, A: 255},
	TexLower:  {R: 150, G: 110, B: 80, A: 255},
	TexFloor:  {R: 90, G: 120, B: 90, A: 255},
	TexCeil:   {R: 200, G: 200, B: 210, A: 255},
	TexPillar: {R: 160, G: 60, B: 60, A: 255},
}

var defaultWalls = level.WallTextures{
	Middle: TexWall,
	Upper:  TexUpper,
	Lower:  TexLower,
}

// levelBuilder collects the sectors of a test level.
// All methods panic on errors, since the levels are fixed data.
type levelBuilder struct {
	b *level.Builder
}

func newLevel() *levelBuilder {
	return &levelBuilder{b: level.NewBuilder()}
}

// poly adds a sector with the given outline. The outline may be given in
// either orientation.
func (lb *levelBuilder) poly(floor, ceil float64, outline ...vec.Vec2) level.SectorID {
	return lb.polyTex(floor, ceil, defaultWalls, outline...)
}

func (lb *levelBuilder) polyTex(floor, ceil float64, walls level.WallTextures, outline ...vec.Vec2) level.SectorID {
	if !geometry.Clockwise(outline) {
		outline = slices.Clone(outline)
		slices.Reverse(outline)
	}
	loop := make([]level.VertexID, len(outline))
	for i, p := range outline {
		loop[i] = lb.b.FindOrAddVertex(p)
	}
	s, err := lb.b.AddSector(level.SectorSpec{
		Loop:         loop,
		Floor:        floor,
		Ceil:         ceil,
		Light:        1,
		FloorTexture: TexFloor,
		CeilTexture:  TexCeil,
		Default:      walls,
	})
	if err != nil {
		panic(err)
	}
	return s
}

// box adds an axis-parallel rectangular sector.
func (lb *levelBuilder) box(x0, y0, x1, y1, floor, ceil float64) level.SectorID {
	return lb.poly(floor, ceil, pt(x0, y0), pt(x0, y1), pt(x1, y1), pt(x1, y0))
}

// light sets the light level of sector s.
func (lb *levelBuilder) light(s level.SectorID, light float64) {
	if err := lb.b.SetLight(s, light); err != nil {
		panic(err)
	}
}

// build links all matching walls and returns the validated level.
func (lb *levelBuilder) build() *level.Graph {
	lb.b.AutoLink()
	g, err := lb.b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
