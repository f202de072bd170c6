package picking

import (
	"fmt"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Candidate is one pickable object: its world matrix and its bounds in local
// space.
type Candidate struct {
	Id     core.NodeId
	World  mgl32.Mat4
	Bounds geom.AABB
}

type Hit struct {
	Id       core.NodeId
	Distance float32
	Point    mgl32.Vec3
}

// Picker tests rays against candidates. OnSkip, if set, is told about every
// candidate that could not be tested.
type Picker struct {
	OnSkip func(id core.NodeId, err error)
}

// Pick returns the nearest candidate hit by ray, or nil.
func Pick(ray geom.Ray, candidates []Candidate) *Hit {
	return Picker{}.Pick(ray, candidates)
}

func (p Picker) Pick(ray geom.Ray, candidates []Candidate) *Hit {
	var best *Hit

	for _, c := range candidates {
		if !c.Bounds.Valid() {
			p.skip(c.Id, fmt.Errorf("node %d: empty bounds: %w", c.Id, core.ErrGeometryUndefined))
			continue
		}
		if !geom.FiniteMat(c.World) || c.World.Det() == 0 {
			p.skip(c.Id, fmt.Errorf("node %d: world transform not invertible: %w", c.Id, core.ErrGeometryUndefined))
			continue
		}
		w2o := c.World.Inv()
		if !geom.FiniteMat(w2o) {
			p.skip(c.Id, fmt.Errorf("node %d: world transform not invertible: %w", c.Id, core.ErrGeometryUndefined))
			continue
		}

		// Transform ray to object space. The direction is left unnormalized so
		// distances are measured back in world space.
		ro := w2o.Mul4x1(ray.Origin.Vec4(1.0)).Vec3()
		rd := w2o.Mul4x1(ray.Direction.Vec4(0.0)).Vec3()

		tObj, hit := geom.IntersectRayAabb(ro, rd, c.Bounds.Min, c.Bounds.Max)
		if !hit {
			continue
		}

		pHitOs := ro.Add(rd.Mul(tObj))
		pHitWs := c.World.Mul4x1(pHitOs.Vec4(1.0)).Vec3()
		tWorld := pHitWs.Sub(ray.Origin).Len()

		if best == nil || tWorld < best.Distance {
			best = &Hit{Id: c.Id, Distance: tWorld, Point: pHitWs}
		}
	}

	return best
}

func (p Picker) skip(id core.NodeId, err error) {
	if p.OnSkip != nil {
		p.OnSkip(id, err)
	}
}

// Gather collects candidates for ids from reader, in order. Nodes without a
// world transform or bounds are reported through OnSkip and left out.
func (p Picker) Gather(reader core.SceneReader, ids []core.NodeId) []Candidate {
	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		tr, ok := reader.WorldTransform(id)
		if !ok {
			p.skip(id, fmt.Errorf("node %d: no transform: %w", id, core.ErrMissingComponent))
			continue
		}
		bounds, ok := reader.LocalBounds(id)
		if !ok {
			p.skip(id, fmt.Errorf("node %d: no bounds: %w", id, core.ErrMissingComponent))
			continue
		}
		out = append(out, Candidate{Id: id, World: tr.ObjectToWorld(), Bounds: bounds})
	}
	return out
}
