package gizmo

import (
	"fmt"
	"math"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Handle is the screen-space shape of one axis. Move and Scale handles are
// the segment Origin->Tip, Rotate handles are the closed Ring polyline.
type Handle struct {
	Axis Axis
	Tip  mgl32.Vec2
	Ring []mgl32.Vec2
}

// Overlay is the gizmo as drawn this frame. It is never kept across frames.
type Overlay struct {
	Mode    Mode
	Origin  mgl32.Vec2
	Handles []Handle
}

// Each ring lies in the plane of the other two axes.
var ringPlanes = [3][2]Axis{
	X: {Y, Z},
	Y: {X, Z},
	Z: {X, Y},
}

// AxisLength keeps the gizmo a usable size on screen at any zoom.
func AxisLength(p Params, distance float32) float32 {
	return mgl32.Clamp(distance*p.AxisLengthFactor, p.MinAxisLength, p.MaxAxisLength)
}

// Directions returns the three handle directions for space.
func Directions(space Space, rotation mgl32.Quat) [3]mgl32.Vec3 {
	switch space {
	case Local:
		return core.Transform{Rotation: rotation}.Basis()
	default:
		return [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
}

// BuildOverlay projects the gizmo of the object at world. It fails with
// core.ErrGeometryUndefined when the object's origin is not on screen. In
// Rotate mode a ring sample that does not project drops every ring for the
// frame; the overlay is then returned without handles.
func BuildOverlay(cam core.Camera, world core.Transform, mode Mode, space Space, p Params) (*Overlay, error) {
	origin, ok := cam.WorldToViewport(world.Position)
	if !ok {
		return nil, fmt.Errorf("gizmo origin %v does not project: %w", world.Position, core.ErrGeometryUndefined)
	}

	length := AxisLength(p, cam.Eye().Sub(world.Position).Len())
	dirs := Directions(space, world.Rotation)
	ov := &Overlay{Mode: mode, Origin: origin}

	switch mode {
	case Move, Scale:
		for _, axis := range Axes {
			tip, ok := cam.WorldToViewport(world.Position.Add(dirs[axis].Mul(length)))
			if !ok {
				continue
			}
			ov.Handles = append(ov.Handles, Handle{Axis: axis, Tip: tip})
		}
	case Rotate:
		handles := make([]Handle, 0, len(Axes))
		for _, axis := range Axes {
			plane := ringPlanes[axis]
			u, v := dirs[plane[0]], dirs[plane[1]]
			ring, ok := projectRing(cam, world.Position, u, v, length, p.RingSegments)
			if !ok {
				return ov, nil
			}
			handles = append(handles, Handle{Axis: axis, Ring: ring})
		}
		ov.Handles = handles
	}
	return ov, nil
}

func projectRing(cam core.Camera, center, u, v mgl32.Vec3, radius float32, segments int) ([]mgl32.Vec2, bool) {
	if segments < 1 {
		return nil, false
	}
	points := make([]mgl32.Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := float64(i) / float64(segments) * 2 * math.Pi
		c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
		p := center.Add(u.Mul(c).Add(v.Mul(s)).Mul(radius))
		sp, ok := cam.WorldToViewport(p)
		if !ok {
			return nil, false
		}
		points = append(points, sp)
	}
	return points, true
}

// HitTest returns the handle nearest to cursor within threshold. On an exact
// tie the handle built first wins.
func (o *Overlay) HitTest(cursor mgl32.Vec2, threshold float32) (Axis, bool) {
	if o == nil {
		return X, false
	}

	best := float32(math.Inf(1))
	var hit Axis
	found := false

	for _, h := range o.Handles {
		var d float32
		switch o.Mode {
		case Move, Scale:
			d = geom.DistancePointToSegment(cursor, o.Origin, h.Tip)
		case Rotate:
			if len(h.Ring) < 2 {
				continue
			}
			d = geom.DistancePointToPolyline(cursor, h.Ring)
		default:
			continue
		}
		if d <= threshold && d < best {
			best = d
			hit = h.Axis
			found = true
		}
	}
	return hit, found
}
