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

import "math"

// cameraCases look at the same level from different orientations and with
// different frame shapes.
var cameraCases = []TestCase{
	{
		Name:   "yaw_east",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "yaw_north",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Yaw:    math.Pi / 2,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "yaw_west",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Yaw:    math.Pi,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "yaw_diagonal",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Yaw:    -math.Pi / 4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "pitch_up",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Pitch:  0.4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "pitch_down",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Pitch:  -0.4,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "eye_at_floor",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   1,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "eye_above_portal",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   52,
		Width:  320,
		Height: 240,
	},
	{
		Name:   "wide_frame",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Width:  640,
		Height: 120,
	},
	{
		Name:   "tall_frame",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Width:  120,
		Height: 400,
	},
	{
		Name:   "tiny_frame",
		Level:  lowCeiling,
		Start:  pt(64, 64),
		EyeZ:   32,
		Width:  8,
		Height: 6,
	},
}
