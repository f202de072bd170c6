package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon is the direction magnitude below which a ray is treated as
// parallel to a slab.
const parallelEpsilon = 1e-6

// Ray is a half line from Origin along Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB is an axis aligned box in the space of whatever owns it.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside the box or on its surface.
func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Valid reports whether min <= max on every axis and all corners are finite.
func (b AABB) Valid() bool {
	for i := 0; i < 3; i++ {
		if !finite(b.Min[i]) || !finite(b.Max[i]) || b.Min[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Transform returns the conservative world box enclosing the eight transformed corners.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	corners := [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}

	inf := float32(math.Inf(1))
	out := AABB{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
	for _, c := range corners {
		wc := m.Mul4x1(c.Vec4(1.0)).Vec3()
		for i := 0; i < 3; i++ {
			out.Min[i] = min(out.Min[i], wc[i])
			out.Max[i] = max(out.Max[i], wc[i])
		}
	}
	return out
}

// IntersectRayAabb runs the slab test and returns the first non-negative distance
// along direction at which the ray meets the box. When the origin is inside the box
// the exit distance is returned.
func IntersectRayAabb(origin, direction, minB, maxB mgl32.Vec3) (float32, bool) {
	tMin := float32(math.Inf(-1))
	tMax := float32(math.Inf(1))

	for i := 0; i < 3; i++ {
		o, d := origin[i], direction[i]
		if float32(math.Abs(float64(d))) < parallelEpsilon {
			if o < minB[i] || o > maxB[i] {
				return 0, false
			}
			continue
		}

		inv := 1.0 / d
		t1 := (minB[i] - o) * inv
		t2 := (maxB[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	if tMin >= 0 {
		return tMin, true
	}
	return tMax, true
}

// DistancePointToSegment returns the distance from p to the closest point of segment ab.
func DistancePointToSegment(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	var t float32
	if lenSq > 0 {
		t = p.Sub(a).Dot(ab) / lenSq
	}
	t = mgl32.Clamp(t, 0, 1)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// DistancePointToPolyline returns the smallest segment distance over consecutive
// point pairs, or +Inf when fewer than two points are given.
func DistancePointToPolyline(p mgl32.Vec2, points []mgl32.Vec2) float32 {
	best := float32(math.Inf(1))
	for i := 0; i+1 < len(points); i++ {
		if d := DistancePointToSegment(p, points[i], points[i+1]); d < best {
			best = d
		}
	}
	return best
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// FiniteVec reports whether every component of v is a finite number.
func FiniteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

// FiniteMat reports whether every element of m is a finite number.
func FiniteMat(m mgl32.Mat4) bool {
	for _, f := range m {
		if !finite(f) {
			return false
		}
	}
	return true
}
