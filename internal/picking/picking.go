// Package picking casts rays from the cursor into the scene and intersects
// them with spheres and axis-aligned boxes.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const rayMaxDistance float32 = 1e9

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// NewRay unprojects the cursor at (x, y) window pixels through invPV, the
// inverse of projection * view. The origin lies on the near plane.
func NewRay(x, y float64, width, height int, invPV mgl32.Mat4) Ray {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	ndcX := float32(2*x/float64(width) - 1)
	ndcY := float32(1 - 2*y/float64(height))

	near := unproject(invPV, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invPV, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Dir: dir}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p.W() == 0 {
		return p.Vec3()
	}
	return p.Vec3().Mul(1 / p.W())
}

// RaySphere returns the distance to the first intersection in front of the
// ray origin.
func RaySphere(r Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := (-b - sq) / (2 * a)
	if t > 0 {
		return t, true
	}
	return 0, false
}

// RayAABB intersects the ray with the box [lo, hi] using the slab method and
// returns the entry distance. A zero direction component yields infinite
// slab bounds, so the ray only hits if its origin lies inside that slab.
func RayAABB(r Ray, lo, hi mgl32.Vec3) (float32, bool) {
	tmin := float32(0)
	tmax := rayMaxDistance

	for axis := range 3 {
		inv := 1 / r.Dir[axis]
		t0 := (lo[axis] - r.Origin[axis]) * inv
		t1 := (hi[axis] - r.Origin[axis]) * inv
		if math.IsNaN(float64(t0)) || math.IsNaN(float64(t1)) {
			// Origin exactly on a slab plane with a parallel ray.
			if r.Origin[axis] < lo[axis] || r.Origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		if inv < 0 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmax = min(tmax, t1)
		if tmax < tmin {
			return 0, false
		}
	}

	if tmax <= tmin || tmax <= 0 {
		return 0, false
	}
	return tmin, true
}

// Box returns the min/max corners of a box given its center and half extents.
func Box(center, half mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	return center.Sub(half), center.Add(half)
}
