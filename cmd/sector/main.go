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

// Command sector shows a level in a window.
//
// Use WASD or the arrow keys to move, Q and E to turn, space and ctrl to
// change the eye height. Click into the window to look around with the
// mouse. Tab cycles through the minimap modes. Esc releases the mouse, or
// quits if the mouse is not captured.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"seehuhn.de/go/sector"
	"seehuhn.de/go/sector/level"
	"seehuhn.de/go/sector/movement"
	"seehuhn.de/go/sector/testcases"
)

const (
	walkSpeed  = 96.0 // map units per second
	turnSpeed  = 2.0  // radians per second
	liftSpeed  = 48.0 // eye height change per second
	mouseSpeed = 0.004
	minEye     = 8.0
	defaultEye = 41.0 // for level files

	// The built-in scenes are a few hundred units across.
	fogDistance = 640.0
)

func main() {
	levelFile := flag.String("level", "", "level `file` to show, in "+level.FileExtension+" format")
	scene := flag.String("scene", "complex/ring", "built-in scene as category/name, used without -level")
	width := flag.Int("width", 320, "frame width in pixels")
	height := flag.Int("height", 200, "frame height in pixels")
	scale := flag.Int("scale", 3, "window scale factor")
	tps := flag.Int("tps", 60, "updates per second")
	verbose := flag.Bool("v", false, "log per-frame statistics")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	sector.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if err := run(*levelFile, *scene, *width, *height, *scale, *tps); err != nil {
		fmt.Fprintln(os.Stderr, "sector:", err)
		os.Exit(1)
	}
}

func run(levelFile, scene string, width, height, scale, tps int) error {
	g, cam, err := loadLevel(levelFile, scene)
	if err != nil {
		return err
	}

	v := &viewer{cam: cam, eye: cam.Z - g.Sector(cam.Sector).Floor}
	v.img = ebiten.NewImage(width, height)
	v.d = sector.NewDriver(width, height, sector.PresenterFunc(func(frame *image.RGBA) error {
		v.img.WritePixels(frame.Pix)
		return nil
	}))
	v.d.Renderer.Textures = sector.CheckerSet(testcases.Colors, 16)
	v.d.Renderer.FogDistance = fogDistance
	v.d.Renderer.MinBrightness = 0.2
	v.d.Minimap = sector.NewMinimap(image.Rect(width-width/3, 0, width, height/3*2))
	v.d.HUD = sector.NewHUD()
	v.d.Status = func(cam sector.Camera, st sector.Stats) []string {
		lines := sector.StatusLines(cam, st)
		return append(lines, fmt.Sprintf("fps %.0f", ebiten.ActualFPS()))
	}
	if err := v.d.SetLevel(g); err != nil {
		return err
	}

	ebiten.SetWindowTitle("sector")
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetTPS(tps)
	err = ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// loadLevel reads a level file, or picks one of the built-in scenes.
func loadLevel(fname, scene string) (*level.Graph, sector.Camera, error) {
	if fname != "" {
		f, err := os.Open(fname)
		if err != nil {
			return nil, sector.Camera{}, err
		}
		defer f.Close()
		g, err := level.Decode(f)
		if err != nil {
			return nil, sector.Camera{}, fmt.Errorf("%s: %w", fname, err)
		}
		cam, err := sector.StartCamera(g, defaultEye)
		return g, cam, err
	}

	category, name, _ := strings.Cut(scene, "/")
	for _, tc := range testcases.All[category] {
		if tc.Name != name {
			continue
		}
		cam, err := sector.NewCamera(tc.Level, tc.Start, tc.EyeZ, tc.Yaw)
		cam.Pitch = tc.Pitch
		return tc.Level, cam, err
	}
	return nil, sector.Camera{}, fmt.Errorf("unknown scene %q, categories are %s",
		scene, strings.Join(slices.Sorted(maps.Keys(testcases.All)), ", "))
}

type viewer struct {
	d   *sector.Driver
	img *ebiten.Image
	cam sector.Camera
	eye float64 // eye height above the floor

	captured       bool
	lastX, lastY   int
	lastFrameError error
}

func (v *viewer) Update() error {
	if v.lastFrameError != nil {
		return v.lastFrameError
	}
	dt := 1 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !v.captured {
			return ebiten.Termination
		}
		v.captured = false
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !v.captured {
		v.captured = true
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		v.lastX, v.lastY = ebiten.CursorPosition()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.d.Minimap.Mode = v.d.Minimap.Mode.Next()
	}

	if v.captured {
		x, y := ebiten.CursorPosition()
		v.cam.Yaw -= float64(x-v.lastX) * mouseSpeed
		v.cam.Pitch -= float64(y-v.lastY) * mouseSpeed
		v.cam.Pitch = max(-1, min(1, v.cam.Pitch))
		v.lastX, v.lastY = x, y
	}
	if pressed(ebiten.KeyQ) {
		v.cam.Yaw += turnSpeed * dt
	}
	if pressed(ebiten.KeyE) {
		v.cam.Yaw -= turnSpeed * dt
	}
	v.cam.Yaw = math.Remainder(v.cam.Yaw, 2*math.Pi)

	g := v.d.Level()
	sec := g.Sector(v.cam.Sector)
	if pressed(ebiten.KeySpace) {
		v.eye += liftSpeed * dt
	}
	if pressed(ebiten.KeyControlLeft, ebiten.KeyControlRight) {
		v.eye -= liftSpeed * dt
	}
	v.eye = max(minEye, min(v.eye, sec.Ceil-sec.Floor-1))

	var fwd, side float64
	if pressed(ebiten.KeyW, ebiten.KeyArrowUp) {
		fwd++
	}
	if pressed(ebiten.KeyS, ebiten.KeyArrowDown) {
		fwd--
	}
	if pressed(ebiten.KeyD, ebiten.KeyArrowRight) {
		side++
	}
	if pressed(ebiten.KeyA, ebiten.KeyArrowLeft) {
		side--
	}
	v.cam.Z = sec.Floor + v.eye
	if fwd != 0 || side != 0 {
		delta := v.cam.Forward().Mul(fwd).Add(v.cam.Right().Mul(side))
		delta = delta.Mul(walkSpeed * dt / delta.Length())
		v.cam = movement.Move(g, v.cam, delta)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if _, err := v.d.Frame(v.cam); err != nil {
		v.lastFrameError = err
		return
	}
	screen.DrawImage(v.img, nil)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.d.Renderer.Size()
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
