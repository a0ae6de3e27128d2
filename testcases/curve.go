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

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector/level"
)

// curveCases contain levels whose walls approximate curves.
var curveCases = []TestCase{
	{
		Name:   "bend",
		Level:  bend,
		Start:  pt(150, 10),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "bend_ramp",
		Level:  bendRamp,
		Start:  pt(150, 10),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "round_room",
		Level:  roundRoom,
		Start:  pt(0, 0),
		EyeZ:   32,
		Yaw:    1,
		Width:  320,
		Height: 240,
	},
}

// arcCorridor adds a quarter circle corridor around the origin, split into
// n sectors. The floor of segment i is at rise*i.
func arcCorridor(lb *levelBuilder, inner, outer float64, n int, rise float64) {
	for i := range n {
		a0 := float64(i) / float64(n) * math.Pi / 2
		a1 := float64(i+1) / float64(n) * math.Pi / 2
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)
		floor := rise * float64(i)
		lb.poly(floor, floor+64,
			pt(inner*c0, inner*s0), pt(outer*c0, outer*s0),
			pt(outer*c1, outer*s1), pt(inner*c1, inner*s1))
	}
}

var bend = func() *level.Graph {
	lb := newLevel()
	arcCorridor(lb, 100, 200, 12, 0)
	return lb.build()
}()

var bendRamp = func() *level.Graph {
	lb := newLevel()
	arcCorridor(lb, 100, 200, 12, 4)
	return lb.build()
}()

// roundRoom is a single sector approximating a circle.
var roundRoom = func() *level.Graph {
	const n = 24
	outline := make([]vec.Vec2, n)
	for i := range n {
		s, c := math.Sincos(2 * math.Pi * float64(i) / n)
		outline[i] = pt(150*c, 150*s)
	}
	lb := newLevel()
	lb.poly(0, 80, outline...)
	return lb.build()
}()
