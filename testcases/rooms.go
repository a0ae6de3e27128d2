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

// roomCases contains small levels made of a few sectors.
var roomCases = []TestCase{
	{
		Name:   "single_room",
		Level:  singleRoom,
		Start:  pt(128, 128),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "single_room_corner",
		Level:  singleRoom,
		Start:  pt(16, 16),
		EyeZ:   32,
		Yaw:    math.Pi / 4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "low_ceiling",
		Level:  lowCeiling,
		Start:  pt(32, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "triangle",
		Level:  triangleRoom,
		Start:  pt(100, 60),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "equal_height",
		Level:  equalHeight,
		Start:  pt(32, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "closed_portal",
		Level:  closedPortal,
		Start:  pt(32, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "stairs",
		Level:  stairs,
		Start:  pt(8, 32),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "dark_room",
		Level:  darkRooms,
		Start:  pt(32, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
}

var singleRoom = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 256, 256, 0, 64)
	return lb.build()
}()

// lowCeiling has two rooms; the ceiling of the second is lower.
var lowCeiling = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 128, 128, 0, 64)
	lb.box(128, 0, 256, 128, 0, 40)
	return lb.build()
}()

var triangleRoom = func() *level.Graph {
	lb := newLevel()
	lb.poly(0, 64, pt(0, 0), pt(100, 200), pt(200, 0))
	return lb.build()
}()

// equalHeight has two rooms of the same height, so that the portal
// between them leaves no upper or lower wall.
var equalHeight = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 128, 128, 0, 64)
	lb.box(128, 0, 256, 128, 0, 64)
	return lb.build()
}()

// closedPortal has a portal whose opening has zero height.
var closedPortal = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 128, 128, 0, 64)
	lb.box(128, 0, 256, 128, 64, 100)
	return lb.build()
}()

// stairs is a corridor of rising steps.
var stairs = func() *level.Graph {
	lb := newLevel()
	for i := range 8 {
		x := float64(16 * i)
		lb.box(x, 0, x+16, 64, float64(8*i), 128)
	}
	return lb.build()
}()

// darkRooms has a bright room looking into a dim one.
var darkRooms = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 128, 128, 0, 64)
	dim := lb.box(128, 0, 256, 128, -16, 80)
	lb.light(dim, 0.3)
	return lb.build()
}()
