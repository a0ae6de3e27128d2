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

// Command genpdf draws the floor plans of the test levels.
// It creates one PDF per level and renders it to PNG using Ghostscript.
package main

import (
	"flag"
	"fmt"
	"maps"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/sector/level"
	"seehuhn.de/go/sector/testcases"
)

const (
	planDir = "testdata/plans"
	size    = 400 // longer side of the drawing in points
	margin  = 20
)

func main() {
	png := flag.Bool("png", false, "also render PNG files using Ghostscript")
	flag.Parse()

	if err := os.MkdirAll(planDir, 0755); err != nil {
		panic(err)
	}

	done := make(map[*level.Graph]bool)
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if done[tc.Level] {
				continue
			}
			done[tc.Level] = true

			name := category + "_" + tc.Name
			pdfPath := filepath.Join(planDir, name+".pdf")
			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if !*png {
				continue
			}
			pngPath := filepath.Join(planDir, name+".png")
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	g := tc.Level
	b := g.Bounds()
	bw := max(b.URx-b.LLx, 1)
	bh := max(b.URy-b.LLy, 1)
	s := size / max(bw, bh)
	w := s*bw + 2*margin
	h := s*bh + 2*margin

	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Map space is y-up, like PDF user space, so a scale and a shift
	// are enough.
	page.Transform(matrix.Matrix{s, 0, 0, s, margin - s*b.LLx, margin - s*b.LLy})

	// Sectors are shaded by floor height, higher floors are lighter.
	lo, hi := math.Inf(1), math.Inf(-1)
	for id := range g.Sectors() {
		f := g.Sector(id).Floor
		lo = min(lo, f)
		hi = max(hi, f)
	}
	for id := range g.Sectors() {
		gray := 0.75
		if hi > lo {
			gray = 0.6 + 0.3*(g.Sector(id).Floor-lo)/(hi-lo)
		}
		page.SetFillColor(color.DeviceGray(gray))
		for i, p := range g.Polygon(id) {
			if i == 0 {
				page.MoveTo(p.X, p.Y)
			} else {
				page.LineTo(p.X, p.Y)
			}
		}
		page.ClosePath()
		page.Fill()
	}

	page.SetLineCap(graphics.LineCapRound)

	// solid walls
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(1.5 / s)
	for id := range g.Sectors() {
		for _, wall := range g.Walls(id) {
			if g.Wall(wall).IsPortal() {
				continue
			}
			a, b := g.WallPoints(wall)
			page.MoveTo(a.X, a.Y)
			page.LineTo(b.X, b.Y)
		}
	}
	page.Stroke()

	// portals
	page.SetStrokeColor(color.DeviceGray(0.35))
	page.SetLineWidth(0.75 / s)
	page.SetLineDash([]float64{3 / s, 3 / s}, 0)
	for wall := range g.Portals() {
		a, b := g.WallPoints(wall)
		page.MoveTo(a.X, a.Y)
		page.LineTo(b.X, b.Y)
	}
	page.Stroke()
	page.SetLineDash(nil, 0)

	// starting view
	r := 4 / s
	sin, cos := math.Sincos(tc.Yaw)
	page.SetFillColor(color.DeviceGray(0))
	page.MoveTo(tc.Start.X+2*r*cos, tc.Start.Y+2*r*sin)
	page.LineTo(tc.Start.X-r*cos+r*sin, tc.Start.Y-r*sin-r*cos)
	page.LineTo(tc.Start.X-r*cos-r*sin, tc.Start.Y-r*sin+r*cos)
	page.ClosePath()
	page.Fill()

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r144",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
