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

// precisionCases place the camera and the walls in numerically awkward
// positions.
var precisionCases = []TestCase{
	{
		Name:   "near_wall",
		Level:  singleRoom,
		Start:  pt(255.95, 128),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "near_corner",
		Level:  singleRoom,
		Start:  pt(0.05, 0.05),
		EyeZ:   32,
		Yaw:    -3 * math.Pi / 4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "on_portal",
		Level:  lowCeiling,
		Start:  pt(127.999, 64),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "along_portal",
		Level:  lowCeiling,
		Start:  pt(127.5, 1),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "sliver",
		Level:  sliver,
		Start:  pt(32, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "huge_room",
		Level:  hugeRoom,
		Start:  pt(50000, 50000),
		EyeZ:   32,
		Yaw:    0.1,
		Width:  320,
		Height: 240,
	},
}

// sliver has a very thin sector between two rooms.
var sliver = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 128, 128, 0, 64)
	lb.box(128, 0, 128.01, 128, 0, 64)
	lb.box(128.01, 0, 256, 128, 0, 64)
	return lb.build()
}()

var hugeRoom = func() *level.Graph {
	lb := newLevel()
	lb.box(0, 0, 100000, 100000, 0, 64)
	return lb.build()
}()
