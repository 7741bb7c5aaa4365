package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

func TestCubeVertices(t *testing.T) {
	v := CubeVertices()
	require.Len(t, v, CubeVertexCount*FloatsPerVertex)

	for i := 0; i < len(v); i += FloatsPerVertex {
		for axis := range 3 {
			assert.InDelta(t, 0.5, abs(v[i+axis]), 1e-6, "vertex %d axis %d", i/FloatsPerVertex, axis)
		}
		n := mgl32.Vec3{v[i+3], v[i+4], v[i+5]}
		assert.InDelta(t, 1, n.Len(), 1e-6)
		assert.True(t, v[i+6] == 0 || v[i+6] == 1)
		assert.True(t, v[i+7] == 0 || v[i+7] == 1)
	}
}

func TestCubeFacesWindCounterClockwise(t *testing.T) {
	v := CubeVertices()
	for tri := 0; tri < CubeVertexCount/3; tri++ {
		base := tri * 3 * FloatsPerVertex
		p := func(k int) mgl32.Vec3 {
			o := base + k*FloatsPerVertex
			return mgl32.Vec3{v[o], v[o+1], v[o+2]}
		}
		n := mgl32.Vec3{v[base+3], v[base+4], v[base+5]}
		cross := p(1).Sub(p(0)).Cross(p(2).Sub(p(0)))
		assert.Greater(t, cross.Dot(n), float32(0), "triangle %d", tri)
	}
}

func TestHollowBoxParts(t *testing.T) {
	center := mgl32.Vec3{10, 20, 30}
	color := mgl32.Vec3{1, 0, 0}
	parts := HollowBox(center, 100, 40, 60, 5, color)
	require.Len(t, parts, 5)

	bottom := translation(parts[0].Model)
	assert.InDelta(t, 20-20+2.5, bottom.Y(), 1e-4)

	left := translation(parts[1].Model)
	right := translation(parts[2].Model)
	assert.InDelta(t, 10-50+2.5, left.X(), 1e-4)
	assert.InDelta(t, 10+50-2.5, right.X(), 1e-4)
	assert.InDelta(t, parts[1].Model[5], 35, 1e-4, "wall height excludes the floor")

	front := translation(parts[3].Model)
	back := translation(parts[4].Model)
	assert.InDelta(t, 30+30-2.5, front.Z(), 1e-4)
	assert.InDelta(t, 30-30+2.5, back.Z(), 1e-4)
	assert.InDelta(t, 90, parts[3].Model[0], 1e-4)

	for _, p := range parts {
		assert.Equal(t, color, p.Color)
	}
}

func TestHollowCylinderSegments(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, MinCylinderSegments},
		{3, MinCylinderSegments},
		{32, 32},
	}

	for _, tt := range tests {
		parts := HollowCylinder(mgl32.Vec3{}, 50, 20, 4, tt.requested, mgl32.Vec3{1, 1, 1})
		require.Len(t, parts, tt.want)

		for _, p := range parts {
			pos := translation(p.Model)
			assert.InDelta(t, 48, mgl32.Vec2{pos.X(), pos.Z()}.Len(), 1e-3)

			// The slab's thickness axis points radially.
			radial := p.Model.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3().Normalize()
			outward := mgl32.Vec3{pos.X(), 0, pos.Z()}.Normalize()
			assert.InDelta(t, 1, abs(radial.Dot(outward)), 1e-4)
		}
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
