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
	"fmt"
	"image"

	"seehuhn.de/go/sector/level"
)

// A Presenter receives finished frames. The image is only valid until
// Present returns.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// PresenterFunc adapts an ordinary function to the [Presenter] interface.
type PresenterFunc func(frame *image.RGBA) error

// Present implements the [Presenter] interface.
func (f PresenterFunc) Present(frame *image.RGBA) error {
	return f(frame)
}

// Driver renders frames of the current level into a back buffer, draws the
// overlays and hands the result to a presenter.
//
// A Driver is not safe for concurrent use.
type Driver struct {
	Renderer *Renderer

	// Minimap and HUD are drawn over the scene when not nil.
	Minimap *Minimap
	HUD     *HUD

	// Status, if set, supplies the HUD text for each frame. Without it the
	// HUD shows [StatusLines].
	Status func(cam Camera, st Stats) []string

	presenter Presenter
	buf       *image.RGBA
	g         *level.Graph
}

// NewDriver returns a driver for frames of width×height pixels.
func NewDriver(width, height int, p Presenter) *Driver {
	return &Driver{
		Renderer:  NewRenderer(width, height),
		presenter: p,
		buf:       image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// SetLevel validates g and makes a private copy of it the current level.
// If g is malformed, the previous level is kept.
func (d *Driver) SetLevel(g *level.Graph) error {
	if err := g.Validate(); err != nil {
		Logger().Warn("level rejected", "error", err)
		return err
	}
	d.g = g.Clone()
	Logger().Info("level loaded",
		"sectors", d.g.NumSectors(),
		"walls", d.g.NumWalls())
	return nil
}

// Level returns the current level, or nil if none has been set.
// The caller must not modify the result.
func (d *Driver) Level() *level.Graph {
	return d.g
}

// Frame renders one frame from cam and presents it.
// If the frame cannot be rendered, nothing is presented.
func (d *Driver) Frame(cam Camera) (Stats, error) {
	if d.g == nil {
		return Stats{}, ErrNoSector
	}
	st, err := d.Renderer.Render(d.buf, d.g, cam)
	if err != nil {
		return st, err
	}

	if d.Minimap != nil {
		d.Minimap.Draw(d.buf, d.g, cam)
	}
	if d.HUD != nil {
		status := d.Status
		if status == nil {
			status = StatusLines
		}
		d.HUD.Draw(d.buf, status(cam, st)...)
	}

	Logger().Debug("frame",
		"sector", cam.Sector,
		"fragments", st.Fragments,
		"depth", st.MaxDepth,
		"walls", st.WallsDrawn,
		"pixels", st.PixelsPainted)

	if d.presenter != nil {
		if err := d.presenter.Present(d.buf); err != nil {
			return st, fmt.Errorf("present: %w", err)
		}
	}
	return st, nil
}
