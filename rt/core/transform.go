package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Basis returns the rotated unit axes of the transform, ignoring scale.
func (t Transform) Basis() [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		t.Rotation.Rotate(mgl32.Vec3{1, 0, 0}),
		t.Rotation.Rotate(mgl32.Vec3{0, 1, 0}),
		t.Rotation.Rotate(mgl32.Vec3{0, 0, 1}),
	}
}

// Compose returns the world transform of a child whose local transform is local,
// parented under t.
// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
func (t Transform) Compose(local Transform) Transform {
	scaledLocalPos := mgl32.Vec3{
		local.Position.X() * t.Scale.X(),
		local.Position.Y() * t.Scale.Y(),
		local.Position.Z() * t.Scale.Z(),
	}
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(scaledLocalPos)),
		Rotation: t.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			t.Scale.X() * local.Scale.X(),
			t.Scale.Y() * local.Scale.Y(),
			t.Scale.Z() * local.Scale.Z(),
		},
	}
}

// Relative is the inverse of Compose: it expresses the world transform world in
// the space of t. Scale components are chosen so that composing the result
// back under t gives at least the requested world scale.
func (t Transform) Relative(world Transform) Transform {
	diff := world.Position.Sub(t.Position)
	localPos := t.Rotation.Conjugate().Rotate(diff)
	var out Transform
	for i := 0; i < 3; i++ {
		out.Position[i] = localPos[i] / guardScale(t.Scale[i])
		out.Scale[i] = divScale(world.Scale[i], t.Scale[i])
	}
	out.Rotation = t.Rotation.Conjugate().Mul(world.Rotation).Normalize()
	return out
}

// scaleEpsilon is the parent scale magnitude below which division is clamped.
const scaleEpsilon = 1e-6

func guardScale(s float32) float32 {
	switch {
	case s >= 0 && s < scaleEpsilon:
		return scaleEpsilon
	case s < 0 && s > -scaleEpsilon:
		return -scaleEpsilon
	}
	return s
}

// divScale returns w/p, nudged away from zero by the last rounding step when
// p*(w/p) would fall short of w in magnitude.
func divScale(w, p float32) float32 {
	p = guardScale(p)
	s := w / p
	if w == 0 || math.IsInf(float64(s), 0) {
		return s
	}
	away := float32(math.Inf(1))
	if s < 0 {
		away = float32(math.Inf(-1))
	}
	for i := 0; i < 4 && abs32(p*s) < abs32(w); i++ {
		s = math.Nextafter32(s, away)
	}
	return s
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
