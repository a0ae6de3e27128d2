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

// Command sectorserve renders a level for web browsers.
//
// The page at / opens a websocket to /ws. Each message from the browser
// moves that client's camera, and the server answers with a status line
// and a PNG frame. A new level can be uploaded with PUT /level.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"seehuhn.de/go/sector"
	"seehuhn.de/go/sector/level"
	"seehuhn.de/go/sector/testcases"
)

// defaultEye is the eye height used for uploaded levels and level files.
const defaultEye = 41

func main() {
	addr := flag.String("addr", "localhost:8080", "listen address")
	levelFile := flag.String("level", "", "level `file` to serve, in "+level.FileExtension+" format")
	scene := flag.String("scene", "complex/ring", "built-in scene as category/name, used without -level")
	width := flag.Int("width", 480, "frame width in pixels")
	height := flag.Int("height", 300, "frame height in pixels")
	verbose := flag.Bool("v", false, "log per-frame statistics")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	sector.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if err := run(*addr, *levelFile, *scene, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, "sectorserve:", err)
		os.Exit(1)
	}
}

func run(addr, levelFile, scene string, width, height int) error {
	g, cam, err := loadLevel(levelFile, scene)
	if err != nil {
		return err
	}
	s, err := newServer(width, height, g, cam, sector.CheckerSet(testcases.Colors, 16))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() {
		sector.Logger().Info("listening", "addr", "http://"+addr+"/")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sector.Logger().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
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
		if tc.Name == name {
			cam, err := sector.NewCamera(tc.Level, tc.Start, tc.EyeZ, tc.Yaw)
			cam.Pitch = tc.Pitch
			return tc.Level, cam, err
		}
	}
	return nil, sector.Camera{}, fmt.Errorf("unknown scene %q", scene)
}
