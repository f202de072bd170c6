package picking

import (
	"errors"
	"math"
	"testing"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitBox = geom.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
var centeredBox = geom.AABB{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}

func at(pos mgl32.Vec3) mgl32.Mat4 {
	tr := core.NewTransform()
	tr.Position = pos
	return tr.ObjectToWorld()
}

func TestPickNearest(t *testing.T) {
	ray := geom.Ray{Origin: mgl32.Vec3{-5, 0.5, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}
	candidates := []Candidate{
		{Id: 2, World: at(mgl32.Vec3{5, 0, 0}), Bounds: unitBox},
		{Id: 1, World: mgl32.Ident4(), Bounds: unitBox},
	}

	hit := Pick(ray, candidates)
	require.NotNil(t, hit)
	assert.Equal(t, core.NodeId(1), hit.Id)
	assert.InDelta(t, 5.0, hit.Distance, 1e-5)
	assert.InDelta(t, 0, hit.Point.Sub(mgl32.Vec3{0, 0.5, 0.5}).Len(), 1e-5)
}

func TestPickTieKeepsFirst(t *testing.T) {
	ray := geom.Ray{Origin: mgl32.Vec3{-5, 0.5, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}
	candidates := []Candidate{
		{Id: 7, World: mgl32.Ident4(), Bounds: unitBox},
		{Id: 3, World: mgl32.Ident4(), Bounds: unitBox},
	}

	hit := Pick(ray, candidates)
	require.NotNil(t, hit)
	assert.Equal(t, core.NodeId(7), hit.Id)
}

func TestPickMiss(t *testing.T) {
	ray := geom.Ray{Origin: mgl32.Vec3{-5, 3, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}
	candidates := []Candidate{{Id: 1, World: mgl32.Ident4(), Bounds: unitBox}}
	assert.Nil(t, Pick(ray, candidates))
	assert.Nil(t, Pick(ray, nil))
}

func TestPickScaledObject(t *testing.T) {
	tr := core.NewTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.Scale = mgl32.Vec3{2, 2, 2}

	ray := geom.Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	hit := Pick(ray, []Candidate{{Id: 1, World: tr.ObjectToWorld(), Bounds: centeredBox}})
	require.NotNil(t, hit)
	assert.InDelta(t, 9.0, hit.Distance, 1e-4)
}

func TestPickRotatedObject(t *testing.T) {
	tr := core.NewTransform()
	tr.Position = mgl32.Vec3{0, 0, -10}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})

	ray := geom.Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}
	hit := Pick(ray, []Candidate{{Id: 1, World: tr.ObjectToWorld(), Bounds: centeredBox}})
	require.NotNil(t, hit)

	// The rotated box presents its vertical edge to the ray.
	expected := 10 - 0.5*float32(math.Sqrt2)
	assert.InDelta(t, expected, hit.Distance, 1e-4)
}

func TestPickSkipsDegenerateCandidates(t *testing.T) {
	flat := core.NewTransform()
	flat.Scale = mgl32.Vec3{1, 0, 1}

	nan := mgl32.Ident4()
	nan[12] = float32(math.NaN())

	ray := geom.Ray{Origin: mgl32.Vec3{-5, 0.5, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}
	candidates := []Candidate{
		{Id: 1, World: flat.ObjectToWorld(), Bounds: unitBox},
		{Id: 2, World: nan, Bounds: unitBox},
		{Id: 3, World: mgl32.Ident4(), Bounds: geom.AABB{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{0, 0, 0}}},
		{Id: 4, World: at(mgl32.Vec3{3, 0, 0}), Bounds: unitBox},
	}

	var skipped []core.NodeId
	p := Picker{OnSkip: func(id core.NodeId, err error) {
		assert.True(t, errors.Is(err, core.ErrGeometryUndefined))
		skipped = append(skipped, id)
	}}

	hit := p.Pick(ray, candidates)
	require.NotNil(t, hit)
	assert.Equal(t, core.NodeId(4), hit.Id)
	assert.InDelta(t, 8.0, hit.Distance, 1e-5)
	assert.Equal(t, []core.NodeId{1, 2, 3}, skipped)
}

type fakeReader struct {
	transforms map[core.NodeId]core.Transform
	bounds     map[core.NodeId]geom.AABB
}

func (f fakeReader) Nodes() []core.NodeRecord { return nil }

func (f fakeReader) WorldTransform(id core.NodeId) (core.Transform, bool) {
	tr, ok := f.transforms[id]
	return tr, ok
}

func (f fakeReader) LocalBounds(id core.NodeId) (geom.AABB, bool) {
	b, ok := f.bounds[id]
	return b, ok
}

func TestGather(t *testing.T) {
	moved := core.NewTransform()
	moved.Position = mgl32.Vec3{1, 2, 3}

	reader := fakeReader{
		transforms: map[core.NodeId]core.Transform{1: moved, 2: core.NewTransform()},
		bounds:     map[core.NodeId]geom.AABB{1: unitBox, 3: unitBox},
	}

	var missing []core.NodeId
	p := Picker{OnSkip: func(id core.NodeId, err error) {
		assert.True(t, errors.Is(err, core.ErrMissingComponent))
		missing = append(missing, id)
	}}

	candidates := p.Gather(reader, []core.NodeId{1, 2, 3})
	require.Len(t, candidates, 1)
	assert.Equal(t, core.NodeId(1), candidates[0].Id)
	assert.Equal(t, moved.ObjectToWorld(), candidates[0].World)
	assert.Equal(t, []core.NodeId{2, 3}, missing)
}
