// Package geometry builds the unit cube mesh and the composite shapes that
// are drawn as a list of transformed cubes.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FloatsPerVertex is position(3), normal(3), uv(2).
	FloatsPerVertex = 8
	CubeVertexCount = 36

	MinCylinderSegments = 6
)

// Part is one cube draw: a model matrix that scales and places the unit cube,
// and its tint.
type Part struct {
	Model mgl32.Mat4
	Color mgl32.Vec3
}

type face struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

var cubeFaces = [6]face{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-.5, -.5, .5}, {.5, -.5, .5}, {.5, .5, .5}, {-.5, .5, .5}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{.5, -.5, -.5}, {-.5, -.5, -.5}, {-.5, .5, -.5}, {.5, .5, -.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-.5, -.5, -.5}, {-.5, -.5, .5}, {-.5, .5, .5}, {-.5, .5, -.5}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{.5, -.5, .5}, {.5, -.5, -.5}, {.5, .5, -.5}, {.5, .5, .5}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-.5, .5, .5}, {.5, .5, .5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, -.5, .5}, {-.5, -.5, .5}}},
}

var faceUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// CubeVertices returns the 36 counter-clockwise vertices of a unit cube
// centered at the origin.
func CubeVertices() []float32 {
	out := make([]float32, 0, CubeVertexCount*FloatsPerVertex)
	for _, f := range cubeFaces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			p := f.corners[i]
			uv := faceUV[i]
			out = append(out, p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2], uv[0], uv[1])
		}
	}
	return out
}

// Box returns the model matrix of an axis-aligned box.
func Box(center, size mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(center[0], center[1], center[2]).
		Mul4(mgl32.Scale3D(size[0], size[1], size[2]))
}

// HollowBox is an open-top container: a floor and four walls standing on it.
func HollowBox(center mgl32.Vec3, w, h, d, t float32, color mgl32.Vec3) []Part {
	bottomY := center.Y() - h/2
	wallH := h - t
	wallY := bottomY + t + wallH/2

	return []Part{
		{Box(mgl32.Vec3{center.X(), bottomY + t/2, center.Z()}, mgl32.Vec3{w, t, d}), color},
		{Box(mgl32.Vec3{center.X() - w/2 + t/2, wallY, center.Z()}, mgl32.Vec3{t, wallH, d}), color},
		{Box(mgl32.Vec3{center.X() + w/2 - t/2, wallY, center.Z()}, mgl32.Vec3{t, wallH, d}), color},
		{Box(mgl32.Vec3{center.X(), wallY, center.Z() + d/2 - t/2}, mgl32.Vec3{w - 2*t, wallH, t}), color},
		{Box(mgl32.Vec3{center.X(), wallY, center.Z() - d/2 + t/2}, mgl32.Vec3{w - 2*t, wallH, t}), color},
	}
}

// HollowCylinder approximates an open tube around the Y axis with segments
// wall slabs, each one arc length wide.
func HollowCylinder(center mgl32.Vec3, r, h, t float32, segments int, color mgl32.Vec3) []Part {
	segments = max(segments, MinCylinderSegments)

	arc := 2 * math.Pi / float64(segments)
	segW := r * float32(arc)
	innerR := r - t/2

	parts := make([]Part, 0, segments)
	for i := range segments {
		angle := float32(i) * float32(arc)
		x := center.X() + innerR*float32(math.Cos(float64(angle)))
		z := center.Z() + innerR*float32(math.Sin(float64(angle)))
		// local Z of the slab points away from the axis
		m := mgl32.Translate3D(x, center.Y(), z).
			Mul4(mgl32.HomogRotate3DY(math.Pi/2 - angle)).
			Mul4(mgl32.Scale3D(segW, h, t))
		parts = append(parts, Part{m, color})
	}
	return parts
}
