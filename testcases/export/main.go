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

// Command export writes the test levels to disk, together with an index
// of the starting views. Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/sector/level"
	"seehuhn.de/go/sector/testcases"
)

const outDir = "testdata/levels"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	// Several test cases share a level; each level is written once.
	written := make(map[*level.Graph]string)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			file, ok := written[tc.Level]
			if !ok {
				file = name + level.FileExtension
				if err := writeLevel(filepath.Join(outDir, file), tc.Level); err != nil {
					panic(err)
				}
				written[tc.Level] = file
			}
			out.TestCases = append(out.TestCases, toJSON(name, file, tc))
		}
	}

	f, err := os.Create(filepath.Join(outDir, "index.json"))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name   string     `json:"name"`
	Level  string     `json:"level"`
	Start  [2]float64 `json:"start"`
	EyeZ   float64    `json:"eye_z"`
	Yaw    float64    `json:"yaw"`
	Pitch  float64    `json:"pitch,omitempty"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

func toJSON(name, file string, tc testcases.TestCase) jsonTestCase {
	return jsonTestCase{
		Name:   name,
		Level:  file,
		Start:  [2]float64{tc.Start.X, tc.Start.Y},
		EyeZ:   tc.EyeZ,
		Yaw:    tc.Yaw,
		Pitch:  tc.Pitch,
		Width:  tc.Width,
		Height: tc.Height,
	}
}

func writeLevel(fname string, g *level.Graph) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := level.Encode(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
