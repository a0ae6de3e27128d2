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

package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sector"
	"seehuhn.de/go/sector/level"
	"seehuhn.de/go/sector/movement"
)

//go:embed index.html
var indexHTML []byte

const (
	maxStep      = 64 // largest move per command, in map units
	maxLevel     = 8 << 20
	writeTimeout = 5 * time.Second
)

// command is sent by clients to move their camera.
type command struct {
	Forward float64 `json:"forward"`
	Strafe  float64 `json:"strafe"`
	Turn    float64 `json:"turn"`  // radians, counter-clockwise
	Pitch   float64 `json:"pitch"` // change of the horizon shear
	Minimap bool    `json:"minimap,omitempty"`
}

// status is sent to the client before every frame.
type status struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Yaw       float64 `json:"yaw"`
	Sector    int     `json:"sector"`
	Fragments int     `json:"fragments"`
	Depth     int     `json:"depth"`
	Minimap   string  `json:"minimap"`
}

// server renders frames for all connected clients with one shared driver.
type server struct {
	mu    sync.Mutex
	d     *sector.Driver
	png   bytes.Buffer
	gen   int // incremented whenever the level is replaced
	start sector.Camera
	eye   float64 // eye height above the floor
}

func newServer(width, height int, g *level.Graph, start sector.Camera, textures sector.TextureSet) (*server, error) {
	s := &server{}
	s.d = sector.NewDriver(width, height, sector.PresenterFunc(s.encode))
	s.d.Renderer.Textures = textures
	s.d.Renderer.FogDistance = 640
	s.d.Renderer.MinBrightness = 0.2
	s.d.Minimap = sector.NewMinimap(image.Rect(width-width/3, 0, width, height/3*2))
	s.d.Minimap.Mode = sector.MinimapOff
	if err := s.d.SetLevel(g); err != nil {
		return nil, err
	}
	s.setStart(start)
	return s, nil
}

// setStart sets the view for new clients. The caller must hold s.mu, or
// be the only user of s.
func (s *server) setStart(cam sector.Camera) {
	s.start = cam
	s.eye = cam.Z - s.d.Level().Sector(cam.Sector).Floor
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
	mux.HandleFunc("GET /ws", s.serveWS)
	mux.HandleFunc("PUT /level", s.putLevel)
	return mux
}

// encode is the presenter of the shared driver.
func (s *server) encode(frame *image.RGBA) error {
	s.png.Reset()
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(&s.png, frame)
}

// frame renders the view from cam and returns the status and the PNG data.
func (s *server) frame(cam sector.Camera, gen int) (status, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		cam = s.relocate(s.d.Level(), cam)
	}
	st, err := s.d.Frame(cam)
	if err != nil {
		return status{}, nil, err
	}
	info := status{
		X:         cam.Pos.X,
		Y:         cam.Pos.Y,
		Z:         cam.Z,
		Yaw:       cam.Yaw,
		Sector:    int(cam.Sector),
		Fragments: st.Fragments,
		Depth:     st.MaxDepth,
		Minimap:   s.d.Minimap.Mode.String(),
	}
	return info, bytes.Clone(s.png.Bytes()), nil
}

// apply moves cam according to c. If the level has been replaced since
// generation gen, the camera is first moved into the new level.
func (s *server) apply(cam sector.Camera, gen int, c command) (sector.Camera, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Minimap {
		s.d.Minimap.Mode = s.d.Minimap.Mode.Next()
	}

	g := s.d.Level()
	if gen != s.gen {
		cam = s.relocate(g, cam)
		gen = s.gen
	}

	cam.Yaw = math.Remainder(cam.Yaw+clamp(c.Turn, math.Pi), 2*math.Pi)
	cam.Pitch = clamp(cam.Pitch+clamp(c.Pitch, 1), 1)

	delta := cam.Forward().Mul(clamp(c.Forward, maxStep)).
		Add(cam.Right().Mul(clamp(c.Strafe, maxStep)))
	if delta != (vec.Vec2{}) {
		cam = movement.Move(g, cam, delta)
	}
	return cam, gen
}

// relocate keeps the position of cam if it lies inside the new level g,
// and uses the starting view otherwise. The caller must hold s.mu.
func (s *server) relocate(g *level.Graph, cam sector.Camera) sector.Camera {
	c, err := sector.NewCamera(g, cam.Pos, s.eye, cam.Yaw)
	if err != nil {
		return s.start
	}
	c.Pitch = cam.Pitch
	return c
}

func (s *server) putLevel(w http.ResponseWriter, r *http.Request) {
	g, err := level.Decode(io.LimitReader(r.Body, maxLevel))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cam, err := sector.StartCamera(g, defaultEye)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = s.d.SetLevel(g)
	if err == nil {
		s.setStart(cam)
		s.gen++
	}
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		sector.Logger().Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	sector.Logger().Info("client connected", "remote", r.RemoteAddr)
	err = s.session(r.Context(), conn)
	switch {
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway,
		errors.Is(err, context.Canceled):
		sector.Logger().Info("client disconnected", "remote", r.RemoteAddr)
	default:
		sector.Logger().Warn("client disconnected", "remote", r.RemoteAddr, "error", err)
		conn.Close(websocket.StatusInternalError, "")
	}
}

// session serves one client until the connection fails.
func (s *server) session(ctx context.Context, conn *websocket.Conn) error {
	s.mu.Lock()
	cam, gen := s.start, s.gen
	s.mu.Unlock()

	for {
		if err := s.send(ctx, conn, cam, gen); err != nil {
			return err
		}
		var c command
		if err := wsjson.Read(ctx, conn, &c); err != nil {
			return err
		}
		cam, gen = s.apply(cam, gen, c)
	}
}

// send writes the status as a text message, followed by the frame as a
// binary message.
func (s *server) send(ctx context.Context, conn *websocket.Conn, cam sector.Camera, gen int) error {
	info, data, err := s.frame(cam, gen)
	if err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, info); err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageBinary, data)
}

func clamp(x, limit float64) float64 {
	return max(-limit, min(limit, x))
}
