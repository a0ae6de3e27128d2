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
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/sector/clip"
	"seehuhn.de/go/sector/geometry"
	"seehuhn.de/go/sector/level"
)

// Errors returned before a frame is rasterised.
var (
	ErrNoSector   = errors.New("camera is not inside a live sector")
	ErrBufferSize = errors.New("frame buffer does not match the renderer size")
)

// Stats summarises the work done for one frame.
type Stats struct {
	Fragments             int // sector fragments entered
	MaxDepth              int // deepest portal nesting reached
	WallsDrawn            int // wall spans which painted at least one column
	ColumnsPainted        int
	PixelsPainted         int
	RecursionLimitReached int // branches cut by MaxDepth or MaxFragments
}

// FragmentInfo describes a sector fragment entered during traversal.
// The window is only valid for the duration of the Tracer call.
type FragmentInfo struct {
	Sector level.SectorID
	X0, X1 int
	Depth  int
	Window *clip.Window
}

// Tracer observes the traversal of a frame. It must not modify the windows
// it is shown.
type Tracer interface {
	// EnterFragment is called when a fragment is taken from the work list.
	EnterFragment(f FragmentInfo)

	// Delegate is called when a portal hands the window child to the
	// neighbouring sector, before the parent gives up the columns.
	Delegate(parent, child *clip.Window)

	// Paint is called for every range of rows [top, bottom) painted in
	// column x.
	Paint(x, top, bottom int, s level.SectorID)
}

// Renderer draws first-person views of a level graph.
//
// The exported fields may be changed between frames. A Renderer is not
// safe for concurrent use.
type Renderer struct {
	// FOV is the horizontal field of view in radians.
	FOV float64

	// Near is the smallest depth used for projecting walls. Walls which
	// are closer to the camera are drawn as if they were at depth Near.
	Near float64

	// FogDistance is the distance at which surfaces reach MinBrightness.
	// Values <= 0 disable distance fading.
	FogDistance float64

	// MinBrightness is the brightness factor at FogDistance and beyond.
	MinBrightness float64

	// MaxDepth limits the nesting of portals.
	MaxDepth int

	// MaxFragments limits the number of sector fragments per frame.
	MaxFragments int

	// Background fills pixels which no surface covers.
	Background color.RGBA

	Textures TextureSet

	// Tracer, if not nil, is informed about traversal and painting.
	Tracer Tracer

	width, height int

	clips   clip.Stack
	work    *stack.Stack[fragment]
	visited mapset.Set[fragmentKey]
	spans   []wallSpan
	owner   []int     // per column, the span index of the nearest wall
	ownerIz []float64 // per column, 1/depth of that wall

	// per-frame state
	dst     *image.RGBA
	g       *level.Graph
	cam     Camera
	view    matrix.Matrix
	focal   float64
	horizon float64
	stats   Stats
}

// NewRenderer returns a renderer for frames of width×height pixels.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		FOV:           math.Pi / 2,
		Near:          DefaultNear,
		FogDistance:   defaultFogDistance,
		MinBrightness: 0,
		MaxDepth:      defaultMaxDepth,
		MaxFragments:  defaultMaxFragments,
		Background:    color.RGBA{A: 255},
		Textures:      TextureSet{},

		width:   width,
		height:  height,
		work:    stack.New[fragment](),
		visited: mapset.New[fragmentKey](),
		owner:   make([]int, width),
		ownerIz: make([]float64, width),
	}
}

// Size returns the frame size the renderer was created for.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

type fragment struct {
	sector level.SectorID
	x0, x1 int
	win    *clip.Window
	depth  int
}

type fragmentKey struct {
	sector level.SectorID
	x0, x1 int
}

// Render draws the view from cam into dst, which must have the size given
// to NewRenderer and origin (0, 0). The graph must be valid.
//
// If the camera is not inside a live sector, Render returns ErrNoSector
// without touching dst.
func (r *Renderer) Render(dst *image.RGBA, g *level.Graph, cam Camera) (Stats, error) {
	if dst.Rect != image.Rect(0, 0, r.width, r.height) {
		return Stats{}, ErrBufferSize
	}
	if g == nil || !g.HasSector(cam.Sector) {
		return Stats{}, ErrNoSector
	}

	r.dst = dst
	r.g = g
	r.cam = cam
	r.view = cam.View()
	r.focal = float64(r.width) / 2 / math.Tan(r.FOV/2)
	r.horizon = float64(r.height)/2 + r.focal*math.Tan(cam.Pitch)
	r.stats = Stats{}
	defer func() {
		r.dst = nil
		r.g = nil
	}()

	r.clear()

	r.visited.Clear()
	root := r.clips.Reset(r.width, r.height)
	r.work.Push(fragment{sector: cam.Sector, x0: 0, x1: r.width, win: root})
	for r.work.Size() > 0 {
		fr := r.work.Pop()

		key := fragmentKey{fr.sector, fr.x0, fr.x1}
		if r.visited.Has(key) {
			continue
		}
		r.visited.Put(key)

		r.stats.Fragments++
		r.stats.MaxDepth = max(r.stats.MaxDepth, fr.depth)
		if r.Tracer != nil {
			r.Tracer.EnterFragment(FragmentInfo{
				Sector: fr.sector,
				X0:     fr.x0,
				X1:     fr.x1,
				Depth:  fr.depth,
				Window: fr.win,
			})
		}
		r.drawFragment(fr)
	}

	if r.stats.RecursionLimitReached > 0 {
		Logger().Warn("portal traversal cut short",
			"branches", r.stats.RecursionLimitReached,
			"fragments", r.stats.Fragments)
	}
	return r.stats, nil
}

func (r *Renderer) clear() {
	bg := r.Background
	pix := r.dst.Pix
	for y := range r.height {
		row := pix[y*r.dst.Stride : y*r.dst.Stride+4*r.width]
		for i := 0; i < len(row); i += 4 {
			row[i] = bg.R
			row[i+1] = bg.G
			row[i+2] = bg.B
			row[i+3] = bg.A
		}
	}
}

// wallSpan is a wall of the current sector, projected to the screen.
type wallSpan struct {
	wall level.WallID

	// screen x of the clipped end points and the columns [x0, x1) covered
	sx1, sx2 float64
	x0, x1   int

	// 1/depth and u/depth at both ends, for perspective-correct interpolation
	iz1, iz2 float64
	uz1, uz2 float64

	// columns where a portal opening remained, set by drawSpan
	openFirst, openLast int
}

// at returns 1/depth and the texture u coordinate of the wall at the
// centre of column x.
func (sp *wallSpan) at(x int) (iz, u float64) {
	s := (float64(x) + 0.5 - sp.sx1) / (sp.sx2 - sp.sx1)
	s = min(max(s, 0), 1)
	iz = sp.iz1 + (sp.iz2-sp.iz1)*s
	u = (sp.uz1 + (sp.uz2-sp.uz1)*s) / iz
	return iz, u
}

// drawFragment draws the walls of one sector fragment and pushes the
// fragments seen through its portals.
func (r *Renderer) drawFragment(fr fragment) {
	r.spans = r.spans[:0]
	for _, w := range r.g.Walls(fr.sector) {
		if span, ok := r.project(w, fr.x0, fr.x1); ok {
			r.spans = append(r.spans, span)
		}
	}
	r.assignColumns(fr.x0, fr.x1)

	for i := range r.spans {
		r.drawSpan(fr, i)
	}
	for i := range r.spans {
		if r.spans[i].openFirst >= 0 {
			r.delegate(fr, i)
		}
	}
}

// assignColumns finds the owner of every column in [x0, x1): the span
// which the ray through the column centre hits first. Within one sector
// only this wall can be visible in the column, even if the sector is not
// convex.
func (r *Renderer) assignColumns(x0, x1 int) {
	for x := x0; x < x1; x++ {
		r.owner[x] = -1
	}
	for i := range r.spans {
		sp := &r.spans[i]
		for x := sp.x0; x < sp.x1; x++ {
			iz, _ := sp.at(x)
			if r.owner[x] < 0 || iz > r.ownerIz[x] {
				r.owner[x] = i
				r.ownerIz[x] = iz
			}
		}
	}
}

// project transforms wall w to view space, clips it against the viewing
// frustum and computes its column span within [lo, hi).
func (r *Renderer) project(w level.WallID, lo, hi int) (wallSpan, bool) {
	a, b := r.g.WallPoints(w)
	va := toView(&r.view, a)
	vb := toView(&r.view, b)

	tanHalf := math.Tan(r.FOV / 2)
	ca, cb, ta, tb, ok := geometry.ClipFrustum(va, vb, tanHalf, depthEpsilon)
	if !ok {
		return wallSpan{}, false
	}

	half := float64(r.width) / 2
	sx1 := half + r.focal*ca.X/ca.Y
	sx2 := half + r.focal*cb.X/cb.Y
	if sx1 >= sx2 {
		return wallSpan{}, false // seen from behind
	}

	x0 := max(pixelStart(sx1, lo, hi), lo)
	x1 := min(pixelStart(sx2, lo, hi), hi)
	if x0 >= x1 {
		return wallSpan{}, false
	}

	length := b.Sub(a).Length()
	z1 := max(ca.Y, depthEpsilon)
	z2 := max(cb.Y, depthEpsilon)
	return wallSpan{
		wall:      w,
		sx1:       sx1,
		sx2:       sx2,
		x0:        x0,
		x1:        x1,
		iz1:       1 / z1,
		iz2:       1 / z2,
		uz1:       ta * length / z1,
		uz2:       tb * length / z2,
		openFirst: -1,
		openLast:  -1,
	}, true
}

// pixelStart returns the first pixel whose centre lies at or to the right
// of the screen coordinate sx, clamped to [lo-1, hi+1].
func pixelStart(sx float64, lo, hi int) int {
	v := math.Ceil(sx - 0.5)
	if !(v > float64(lo-1)) {
		return lo - 1
	}
	if v > float64(hi+1) {
		return hi + 1
	}
	return int(v)
}

// DefaultNear is the default value of Renderer.Near. A camera which is
// kept at least this far from all walls sees them without distortion.
const DefaultNear = 0.1

// Default values for the renderer parameters.
const (
	defaultFogDistance  = 50
	defaultMaxDepth     = 64
	defaultMaxFragments = 4096
)

// depthEpsilon is the depth at which walls are clipped.
const depthEpsilon = 1e-6
