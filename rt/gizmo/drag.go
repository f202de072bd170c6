package gizmo

import (
	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Drag applies one frame of mouse delta to the world pose of the selected
// object. Rotate and Scale need an active axis; without one, and for a zero
// delta, the pose is returned unchanged with false.
func Drag(world core.Transform, mode Mode, space Space, axis *Axis, delta mgl32.Vec2, cam core.Camera, p Params) (core.Transform, bool) {
	if delta.X() == 0 && delta.Y() == 0 {
		return world, false
	}

	dirs := Directions(space, world.Rotation)
	out := world

	switch mode {
	case Move:
		distance := max(cam.Eye().Sub(world.Position).Len(), p.MinDragDistance)
		worldDelta := cam.Right().Mul(delta.X()).
			Add(cam.Up().Mul(-delta.Y())).
			Mul(p.MoveSpeed * distance)
		if axis != nil {
			dir := dirs[*axis]
			worldDelta = dir.Mul(worldDelta.Dot(dir))
		}
		out.Position = world.Position.Add(worldDelta)

	case Rotate:
		if axis == nil {
			return world, false
		}
		angle := (delta.X() + delta.Y()) * p.RotateSpeed
		q := mgl32.QuatRotate(angle, dirs[*axis])
		out.Rotation = q.Mul(world.Rotation).Normalize()

	case Scale:
		if axis == nil {
			return world, false
		}
		factor := mgl32.Clamp(1+(delta.X()+delta.Y())*p.ScaleSpeed, p.MinScaleFactor, p.MaxScaleFactor)
		out.Scale[*axis] = max(world.Scale[*axis]*factor, p.MinScale)

	default:
		return world, false
	}

	return out, true
}
