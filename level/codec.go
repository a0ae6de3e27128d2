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

package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"seehuhn.de/go/geom/vec"
)

// FileExtension is the customary extension of encoded level files.
const FileExtension = ".scn.mp"

const (
	fileMagic   = "sector-level"
	fileVersion = 1
)

// Errors returned by Decode for files which are not level files.
var (
	ErrNotLevel           = errors.New("not a level file")
	ErrUnsupportedVersion = errors.New("unsupported level file version")
)

type fileDocument struct {
	_msgpack struct{} `msgpack:",as_array"`

	Magic    string
	Version  uint16
	Vertices [][2]float64
	Sectors  []fileSector
}

type fileSector struct {
	_msgpack struct{} `msgpack:",as_array"`

	Floor        float64
	Ceil         float64
	Light        float64
	FloorTexture TextureID
	CeilTexture  TextureID
	Walls        []fileWall
}

// fileWall refers to walls by their position in the file, counting the
// walls of all sectors in order.
type fileWall struct {
	_msgpack struct{} `msgpack:",as_array"`

	V1, V2 int32
	Portal int32
	Middle TextureID
	Upper  TextureID
	Lower  TextureID
}

// Encode writes g to w. Removed sectors, walls and unused vertices are
// dropped, so identifiers of the decoded graph may differ from those in g.
func Encode(w io.Writer, g *Graph) error {
	doc := fileDocument{
		Magic:   fileMagic,
		Version: fileVersion,
	}

	vertexIdx := make(map[VertexID]int32)
	vertex := func(v VertexID) int32 {
		if idx, ok := vertexIdx[v]; ok {
			return idx
		}
		idx := int32(len(doc.Vertices))
		p := g.vertices[v]
		doc.Vertices = append(doc.Vertices, [2]float64{p.X, p.Y})
		vertexIdx[v] = idx
		return idx
	}

	wallIdx := make(map[WallID]int32)
	var next int32
	for s := range g.Sectors() {
		for _, w := range g.sectors[s].Walls {
			wallIdx[w] = next
			next++
		}
	}

	for s := range g.Sectors() {
		sec := &g.sectors[s]
		rec := fileSector{
			Floor:        sec.Floor,
			Ceil:         sec.Ceil,
			Light:        sec.Light,
			FloorTexture: sec.FloorTexture,
			CeilTexture:  sec.CeilTexture,
			Walls:        make([]fileWall, len(sec.Walls)),
		}
		for i, w := range sec.Walls {
			wall := &g.walls[w]
			portal := int32(-1)
			if idx, ok := wallIdx[wall.Portal]; ok && wall.Portal != NoWall {
				portal = idx
			}
			rec.Walls[i] = fileWall{
				V1:     vertex(wall.V1),
				V2:     vertex(wall.V2),
				Portal: portal,
				Middle: wall.Middle,
				Upper:  wall.Upper,
				Lower:  wall.Lower,
			}
		}
		doc.Sectors = append(doc.Sectors, rec)
	}

	return msgpack.NewEncoder(w).Encode(&doc)
}

// Decode reads a level file from r. The graph is validated; a file which
// decodes to a malformed graph yields an error matching ErrMalformedGraph.
func Decode(r io.Reader) (*Graph, error) {
	var doc fileDocument
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotLevel, err)
	}
	if doc.Magic != fileMagic {
		return nil, ErrNotLevel
	}
	if doc.Version != fileVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	g := &Graph{
		vertices: make([]vec.Vec2, len(doc.Vertices)),
	}
	for i, p := range doc.Vertices {
		g.vertices[i] = vec.Vec2{X: p[0], Y: p[1]}
	}
	for i, rec := range doc.Sectors {
		sec := Sector{
			Floor:        rec.Floor,
			Ceil:         rec.Ceil,
			Light:        rec.Light,
			FloorTexture: rec.FloorTexture,
			CeilTexture:  rec.CeilTexture,
			Walls:        make([]WallID, len(rec.Walls)),
		}
		for j, w := range rec.Walls {
			g.walls = append(g.walls, Wall{
				V1:     VertexID(w.V1),
				V2:     VertexID(w.V2),
				Sector: SectorID(i),
				Portal: WallID(w.Portal),
				Middle: w.Middle,
				Upper:  w.Upper,
				Lower:  w.Lower,
			})
			sec.Walls[j] = WallID(len(g.walls) - 1)
		}
		g.sectors = append(g.sectors, sec)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Marshal returns the encoded form of g.
func Marshal(g *Graph) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a level from data.
func Unmarshal(data []byte) (*Graph, error) {
	return Decode(bytes.NewReader(data))
}
