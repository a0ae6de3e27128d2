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
	"math"

	"seehuhn.de/go/sector/level"
)

// complexCases contain cycles of portals, concave sectors and sectors seen
// through several openings at once.
var complexCases = []TestCase{
	{
		Name:   "ring",
		Level:  ring,
		Start:  pt(50, 50),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "ring_corner",
		Level:  ring,
		Start:  pt(250, 50),
		EyeZ:   32,
		Yaw:    3 * math.Pi / 4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "ring_raised",
		Level:  raisedRing,
		Start:  pt(50, 50),
		EyeZ:   32,
		Yaw:    math.Pi / 8,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "concave",
		Level:  lShape,
		Start:  pt(32, 32),
		EyeZ:   32,
		Yaw:    math.Pi / 4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "window",
		Level:  window,
		Start:  pt(32, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "two_windows",
		Level:  twoWindows,
		Start:  pt(64, 32),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
}

// ringSectors adds four sectors arranged around a square pillar, each
// touching the next one.
func ringSectors(lb *levelBuilder, floors [4]float64) {
	lb.poly(floors[0], 64, pt(0, 0), pt(0, 100), pt(100, 100), pt(200, 100), pt(200, 0))
	lb.poly(floors[1], 64, pt(200, 0), pt(200, 100), pt(200, 200), pt(300, 200), pt(300, 0))
	lb.poly(floors[2], 64, pt(100, 200), pt(100, 300), pt(300, 300), pt(300, 200), pt(200, 200))
	lb.poly(floors[3], 64, pt(0, 100), pt(0, 300), pt(100, 300), pt(100, 200), pt(100, 100))
}

var ring = func() *level.Graph {
	lb := newLevel()
	ringSectors(lb, [4]float64{0, 0, 0, 0})
	return lb.build()
}()

var raisedRing = func() *level.Graph {
	lb := newLevel()
	ringSectors(lb, [4]float64{0, 8, 16, 24})
	return lb.build()
}()

// lShape is a single concave room.
var lShape = func() *level.Graph {
	lb := newLevel()
	lb.poly(0, 64,
		pt(0, 0), pt(0, 200), pt(80, 200), pt(80, 80), pt(200, 80), pt(200, 0))
	return lb.build()
}()

// window joins two rooms through a thin sector with a raised floor and a
// lowered ceiling.
var window = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 128, 128, 0, 64)
	lb.box(128, 32, 136, 96, 16, 48)
	lb.box(136, 0, 264, 128, 0, 64)
	return lb.build()
}()

// twoWindows has two openings in the same wall which look into the same
// room.
var twoWindows = func() *level.Graph {
	lb := newLevel()
	lb.poly(0, 64,
		pt(0, 0), pt(0, 128),
		pt(24, 128), pt(48, 128), pt(80, 128), pt(104, 128),
		pt(128, 128), pt(128, 0))
	lb.box(24, 128, 48, 136, 16, 48)
	lb.box(80, 128, 104, 136, 16, 48)
	lb.poly(0, 64,
		pt(0, 136), pt(0, 256), pt(128, 256), pt(128, 136),
		pt(104, 136), pt(80, 136), pt(48, 136), pt(24, 136))
	return lb.build()
}()
