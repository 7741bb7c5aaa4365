// Package mesh reads Wavefront OBJ geometry into interleaved vertex data
// laid out like the unit cube: position(3), normal(3), uv(2).
package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const FloatsPerVertex = 8

var ErrEmpty = errors.New("mesh has no faces")

type Mesh struct {
	Vertices []float32
}

// VertexCount is the number of triangle vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

type ref struct {
	pos, tex, norm int
}

// Parse reads v, vn, vt and f records. Faces of up to four vertices are
// triangulated as a fan. Unknown records are skipped and references outside
// the attribute lists produce zero attributes.
func Parse(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		out       []float32
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			positions = append(positions, parseVec3(fields[1:]))
		case "vn":
			normals = append(normals, parseVec3(fields[1:]))
		case "vt":
			v := parseFloats(fields[1:], 2)
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "f":
			refs := make([]ref, 0, 4)
			for _, tok := range fields[1:] {
				if len(refs) == 4 {
					break
				}
				refs = append(refs, parseRef(tok, len(positions), len(uvs), len(normals)))
			}
			if len(refs) < 3 {
				continue
			}
			tris := [][3]int{{0, 1, 2}}
			if len(refs) == 4 {
				tris = append(tris, [3]int{0, 2, 3})
			}
			for _, tri := range tris {
				for _, i := range tri {
					out = appendVertex(out, refs[i], positions, normals, uvs)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return &Mesh{Vertices: out}, nil
}

func appendVertex(out []float32, r ref, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) []float32 {
	var p, n mgl32.Vec3
	var uv mgl32.Vec2
	if r.pos >= 0 && r.pos < len(positions) {
		p = positions[r.pos]
	}
	if r.norm >= 0 && r.norm < len(normals) {
		n = normals[r.norm]
	}
	if r.tex >= 0 && r.tex < len(uvs) {
		uv = uvs[r.tex]
	}
	return append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
}

// parseRef decodes pos[/tex[/normal]] into zero-based indices, -1 if absent.
func parseRef(tok string, nPos, nTex, nNorm int) ref {
	parts := strings.Split(tok, "/")
	r := ref{pos: -1, tex: -1, norm: -1}
	if len(parts) > 0 {
		r.pos = resolveIndex(parts[0], nPos)
	}
	if len(parts) > 1 {
		r.tex = resolveIndex(parts[1], nTex)
	}
	if len(parts) > 2 {
		r.norm = resolveIndex(parts[2], nNorm)
	}
	return r
}

// resolveIndex turns a 1-based OBJ index into a zero-based one. Negative
// indices count back from the current end of the list.
func resolveIndex(s string, n int) int {
	if s == "" {
		return -1
	}
	i, err := strconv.Atoi(s)
	if err != nil || i == 0 {
		return -1
	}
	if i < 0 {
		return n + i
	}
	return i - 1
}

func parseVec3(fields []string) mgl32.Vec3 {
	v := parseFloats(fields, 3)
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func parseFloats(fields []string, n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err == nil {
			out[i] = float32(f)
		}
	}
	return out
}
