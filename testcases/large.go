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

// largeCases contain levels with many sectors, to exercise the limits of
// portal traversal.
var largeCases = []TestCase{
	{
		Name:   "grid",
		Level:  grid,
		Start:  pt(20, 20),
		EyeZ:   32,
		Yaw:    math.Pi / 4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "grid_center",
		Level:  grid,
		Start:  pt(6*64+32, 6*64+32),
		EyeZ:   32,
		Yaw:    0.3,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "long_corridor",
		Level:  longCorridor,
		Start:  pt(8, 32),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
}

// grid is a 12x12 grid of square rooms with varying floor heights.
var grid = func() *level.Graph {
	const n = 12
	lb := newLevel()
	for i := range n {
		for j := range n {
			x := float64(64 * i)
			y := float64(64 * j)
			floor := float64((i+2*j)%3) * 8
			ceil := 96 - float64((2*i+j)%4)*8
			lb.box(x, y, x+64, y+64, floor, ceil)
		}
	}
	return lb.build()
}()

// longCorridor is a straight corridor of 100 sectors; seen along its
// axis it nests more portals than the default traversal depth.
var longCorridor = func() *level.Graph {
	lb := newLevel()
	for i := range 100 {
		x := float64(16 * i)
		lb.box(x, 0, x+16, 64, 0, 64)
	}
	return lb.build()
}()
