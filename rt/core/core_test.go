package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closeEnough(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestTransformComposition(t *testing.T) {
	parent := NewTransform()
	parent.Position = mgl32.Vec3{10, 0, 0}
	parent.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	local := NewTransform()
	local.Position = mgl32.Vec3{5, 0, 0}

	// Parent at (10, 0, 0), Rot 90deg Y. Child local (5, 0, 0).
	// RotY(90) * (5, 0, 0) = (0, 0, -5)
	world := parent.Compose(local)
	expected := mgl32.Vec3{10, 0, -5}
	if world.Position.Sub(expected).Len() > 0.001 {
		t.Errorf("Child position after rotation incorrect: expected %v, got %v", expected, world.Position)
	}

	back := parent.Relative(world)
	if back.Position.Sub(local.Position).Len() > 0.001 {
		t.Errorf("Relative should undo Compose: expected %v, got %v", local.Position, back.Position)
	}
	for i := 0; i < 3; i++ {
		if !closeEnough(back.Scale[i], 1, 0.001) {
			t.Errorf("scale[%d] should round trip to 1, got %f", i, back.Scale[i])
		}
	}
}

func TestTransformObjectToWorld(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 20, 30}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 1, 1, 1}).Vec3()
	assert.InDelta(t, 12, p.X(), 1e-4)
	assert.InDelta(t, 22, p.Y(), 1e-4)
	assert.InDelta(t, 32, p.Z(), 1e-4)
}

func TestTransformBasis(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	b := tr.Basis()
	if b[0].Sub(mgl32.Vec3{0, 1, 0}).Len() > 1e-5 {
		t.Errorf("local X should map to world Y, got %v", b[0])
	}
	if b[2].Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Errorf("local Z should be unchanged, got %v", b[2])
	}
}

func TestCameraBasis(t *testing.T) {
	cam := NewPerspectiveCamera(800, 600)
	assert.InDelta(t, 0, cam.Forward().Sub(mgl32.Vec3{0, 0, -1}).Len(), 1e-5)
	assert.InDelta(t, 0, cam.Right().Sub(mgl32.Vec3{1, 0, 0}).Len(), 1e-5)
	assert.InDelta(t, 0, cam.Up().Sub(mgl32.Vec3{0, 1, 0}).Len(), 1e-5)
}

func TestCameraProjectionRoundTrip(t *testing.T) {
	cam := NewPerspectiveCamera(1280, 720)
	cam.Position = mgl32.Vec3{3, 4, 12}
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	targets := []mgl32.Vec3{{0, 0, 0}, {1, 2, -1}, {-2, 0.5, 3}}
	for _, target := range targets {
		screen, ok := cam.WorldToViewport(target)
		require.True(t, ok, "target %v should project", target)

		ray, ok := cam.ViewportToRay(screen)
		require.True(t, ok)

		toTarget := target.Sub(ray.Origin).Normalize()
		assert.InDelta(t, 1.0, ray.Direction.Dot(toTarget), 1e-4, "ray through %v should aim at target", screen)
	}
}

func TestCameraCenterProjects(t *testing.T) {
	cam := NewPerspectiveCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 10}

	screen, ok := cam.WorldToViewport(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 400, screen.X(), 1e-3)
	assert.InDelta(t, 300, screen.Y(), 1e-3)

	// Behind the camera.
	_, ok = cam.WorldToViewport(mgl32.Vec3{0, 0, 20})
	assert.False(t, ok)

	// Degenerate viewport.
	cam.Width = 0
	_, ok = cam.WorldToViewport(mgl32.Vec3{0, 0, 0})
	assert.False(t, ok)
	_, ok = cam.ViewportToRay(mgl32.Vec2{0, 0})
	assert.False(t, ok)
}

func TestSpawnKindNames(t *testing.T) {
	for k := SpawnEmpty; k <= SpawnSpotLight; k++ {
		parsed, err := ParseSpawnKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseSpawnKind("Teapot")
	assert.Error(t, err)
}

func TestRelativeUnderIdentityIsExact(t *testing.T) {
	world := NewTransform()
	world.Position = mgl32.Vec3{1.5, -2, 0.25}
	world.Scale = mgl32.Vec3{0.01, 2, 0.3}

	local := NewTransform().Relative(world)
	assert.Equal(t, world.Scale, local.Scale)
	assert.Equal(t, world.Position, local.Position)
}

func TestRelativeKeepsWorldScale(t *testing.T) {
	for _, p := range []float32{3, 4, 0.3, 7, 1.0 / 3, -2} {
		parent := NewTransform()
		parent.Scale = mgl32.Vec3{p, p, p}
		world := NewTransform()
		world.Scale = mgl32.Vec3{0.01, 0.07, -0.01}

		back := parent.Compose(parent.Relative(world))
		for i := 0; i < 3; i++ {
			if float32(math.Abs(float64(back.Scale[i]))) < float32(math.Abs(float64(world.Scale[i]))) {
				t.Errorf("parent scale %v axis %d: got %.9f, want at least %.9f in magnitude", p, i, back.Scale[i], world.Scale[i])
			}
			if !closeEnough(back.Scale[i], world.Scale[i], 1e-7) {
				t.Errorf("parent scale %v axis %d: got %.9f, want %.9f", p, i, back.Scale[i], world.Scale[i])
			}
		}
	}
}

func TestRelativeZeroParentScaleStaysFinite(t *testing.T) {
	parent := NewTransform()
	parent.Scale = mgl32.Vec3{0, 1, 1}
	world := NewTransform()
	world.Position = mgl32.Vec3{1, 0, 0}

	local := parent.Relative(world)
	require.False(t, math.IsInf(float64(local.Position.X()), 0))
	require.False(t, math.IsInf(float64(local.Scale.X()), 0))
}

func TestRef(t *testing.T) {
	a, b := Ref(7), Ref(7)
	assert.Equal(t, *a, *b)
	assert.NotSame(t, a, b)
}
