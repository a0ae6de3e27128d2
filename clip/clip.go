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

// Package clip implements the screen-space clip windows used during
// portal traversal.
//
// A window covers the columns X0 to X1-1 of the frame. For each column it
// stores the half-open range of rows [top, bottom) which may still be
// painted. Windows only ever shrink.
package clip

// Window is the visible region of the screen for one traversal fragment.
type Window struct {
	X0, X1 int

	top    []int
	bottom []int
}

// NewWindow returns a window covering all rows of all columns of a
// width×height frame.
func NewWindow(width, height int) *Window {
	w := &Window{}
	w.reset(0, width)
	for i := range w.top {
		w.top[i] = 0
		w.bottom[i] = height
	}
	return w
}

func (w *Window) reset(x0, x1 int) {
	n := max(x1-x0, 0)
	w.X0 = x0
	w.X1 = x0 + n
	if cap(w.top) < n {
		w.top = make([]int, n)
		w.bottom = make([]int, n)
	}
	w.top = w.top[:n]
	w.bottom = w.bottom[:n]
}

// Width returns the number of columns covered by the window.
func (w *Window) Width() int {
	return w.X1 - w.X0
}

// Range returns the open rows [top, bottom) of column x.
// Columns outside the window are empty.
func (w *Window) Range(x int) (top, bottom int) {
	if x < w.X0 || x >= w.X1 {
		return 0, 0
	}
	i := x - w.X0
	return w.top[i], w.bottom[i]
}

// Open reports whether column x has at least one open row.
func (w *Window) Open(x int) bool {
	top, bottom := w.Range(x)
	return top < bottom
}

// Narrow intersects the open range of column x with [top, bottom) and
// reports whether the result is non-empty.
func (w *Window) Narrow(x, top, bottom int) bool {
	if x < w.X0 || x >= w.X1 {
		return false
	}
	i := x - w.X0
	w.top[i] = max(w.top[i], top)
	w.bottom[i] = min(w.bottom[i], bottom)
	if w.top[i] >= w.bottom[i] {
		w.bottom[i] = w.top[i]
		return false
	}
	return true
}

// MarkDrawn removes the rows [top, bottom) from the open range of column x.
//
// If the painted rows reach the top or the bottom of the open range, the
// range shrinks from that side. A strictly interior range would split the
// open range in two; in this case the larger of the two pieces is kept.
func (w *Window) MarkDrawn(x, top, bottom int) {
	if x < w.X0 || x >= w.X1 {
		return
	}
	i := x - w.X0
	t, b := w.top[i], w.bottom[i]
	top = max(top, t)
	bottom = min(bottom, b)
	if top >= bottom {
		return
	}

	switch {
	case top == t && bottom == b:
		w.bottom[i] = t
	case top == t:
		w.top[i] = bottom
	case bottom == b:
		w.bottom[i] = top
	case top-t >= b-bottom:
		w.bottom[i] = top
	default:
		w.top[i] = bottom
	}
}

// Close removes all rows of column x.
func (w *Window) Close(x int) {
	if x < w.X0 || x >= w.X1 {
		return
	}
	i := x - w.X0
	w.bottom[i] = w.top[i]
}

// Degenerate reports whether no row of any column is open.
func (w *Window) Degenerate() bool {
	for i := range w.top {
		if w.top[i] < w.bottom[i] {
			return false
		}
	}
	return true
}

// Contains reports whether every open row of other is open in w.
func (w *Window) Contains(other *Window) bool {
	for x := other.X0; x < other.X1; x++ {
		t, b := other.Range(x)
		if t >= b {
			continue
		}
		pt, pb := w.Range(x)
		if t < pt || b > pb {
			return false
		}
	}
	return true
}

// Stack hands out the clip windows of one frame.
//
// Windows are allocated from a pool which is reused from frame to frame.
// All windows returned since the last call to Reset become invalid when
// Reset is called again.
type Stack struct {
	pool []*Window
	used int
}

// Reset invalidates all windows and returns a fresh root window covering
// the full width×height frame.
func (s *Stack) Reset(width, height int) *Window {
	s.used = 0
	w := s.alloc(0, width)
	for i := range w.top {
		w.top[i] = 0
		w.bottom[i] = height
	}
	return w
}

// Push returns a copy of parent restricted to the columns [x0, x1).
// The range is clipped to the columns of the parent.
func (s *Stack) Push(parent *Window, x0, x1 int) *Window {
	x0 = max(x0, parent.X0)
	x1 = min(x1, parent.X1)
	w := s.alloc(x0, x1)
	if x1 > x0 {
		copy(w.top, parent.top[x0-parent.X0:x1-parent.X0])
		copy(w.bottom, parent.bottom[x0-parent.X0:x1-parent.X0])
	}
	return w
}

// Depth returns the number of windows handed out since the last Reset.
func (s *Stack) Depth() int {
	return s.used
}

func (s *Stack) alloc(x0, x1 int) *Window {
	if s.used == len(s.pool) {
		s.pool = append(s.pool, &Window{})
	}
	w := s.pool[s.used]
	s.used++
	w.reset(x0, x1)
	return w
}
