package core

import (
	"math"

	"github.com/gekko3d/sceneedit/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is what the editor needs from the renderer's camera. Both projections
// report false when the input has no defined image (behind the camera,
// degenerate viewport).
type Camera interface {
	Eye() mgl32.Vec3
	Right() mgl32.Vec3
	Up() mgl32.Vec3
	WorldToViewport(p mgl32.Vec3) (mgl32.Vec2, bool)
	ViewportToRay(p mgl32.Vec2) (geom.Ray, bool)
}

// PerspectiveCamera is a Y-up yaw/pitch camera. Yaw and Pitch are radians,
// FovY is the vertical field of view in degrees, viewport coordinates are
// pixels with the origin at the top left.
type PerspectiveCamera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FovY     float32
	Near     float32
	Far      float32
	Width    int
	Height   int
}

func NewPerspectiveCamera(width, height int) *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: mgl32.Vec3{0, 2, 10},
		FovY:     60.0,
		Near:     0.1,
		Far:      1000.0,
		Width:    width,
		Height:   height,
	}
}

func (c *PerspectiveCamera) Eye() mgl32.Vec3 {
	return c.Position
}

func (c *PerspectiveCamera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Sin(float64(c.Yaw)) * math.Cos(float64(c.Pitch))),
		float32(math.Sin(float64(c.Pitch))),
		float32(-math.Cos(float64(c.Yaw)) * math.Cos(float64(c.Pitch))),
	}
}

func (c *PerspectiveCamera) Right() mgl32.Vec3 {
	// Horizontal, so it stays defined when looking straight up or down.
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}
}

func (c *PerspectiveCamera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// LookAt turns the camera towards target without moving it.
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() < 1e-6 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = float32(math.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1))))
	c.Yaw = float32(math.Atan2(float64(dir.X()), float64(-dir.Z())))
}

func (c *PerspectiveCamera) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(c.Forward()), c.Up())
}

func (c *PerspectiveCamera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.aspect(), c.Near, c.Far)
}

func (c *PerspectiveCamera) aspect() float32 {
	if c.Height == 0 {
		return 1.0
	}
	return float32(c.Width) / float32(c.Height)
}

func (c *PerspectiveCamera) WorldToViewport(p mgl32.Vec3) (mgl32.Vec2, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return mgl32.Vec2{}, false
	}

	vp := c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
	clip := vp.Mul4x1(p.Vec4(1.0))

	// Behind the camera or inside the near plane
	if clip.W() < c.Near {
		return mgl32.Vec2{}, false
	}

	ndc := clip.Vec3().Mul(1.0 / clip.W())
	if ndc.Z() > 1.0 {
		return mgl32.Vec2{}, false
	}

	w, h := float32(c.Width), float32(c.Height)
	x := (ndc.X()*0.5 + 0.5) * w
	y := (1.0 - (ndc.Y()*0.5 + 0.5)) * h
	if !geom.FiniteVec(mgl32.Vec3{x, y, 0}) {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{x, y}, true
}

func (c *PerspectiveCamera) ViewportToRay(p mgl32.Vec2) (geom.Ray, bool) {
	if c.Width <= 0 || c.Height <= 0 {
		return geom.Ray{}, false
	}

	// Normalized Device Coordinates
	nx := (2.0*p.X())/float32(c.Width) - 1.0
	ny := 1.0 - (2.0*p.Y())/float32(c.Height) // Flip Y for NDC

	forward := c.Forward()
	right := c.Right()
	up := c.Up()

	tanHalfFov := float32(math.Tan(float64(mgl32.DegToRad(c.FovY) / 2.0)))

	dir := forward.Add(right.Mul(nx * c.aspect() * tanHalfFov)).Add(up.Mul(ny * tanHalfFov))
	if dir.Len() < 1e-6 || !geom.FiniteVec(dir) {
		return geom.Ray{}, false
	}

	return geom.Ray{Origin: c.Position, Direction: dir.Normalize()}, true
}
