package memstore

import (
	"errors"
	"fmt"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/geom"
	"github.com/gekko3d/sceneedit/rt/hierarchy"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var ErrUnknownNode = errors.New("unknown node")

// Node is one object of the store. Transforms are kept relative to the
// parent, like LocalTransformComponent.
type Node struct {
	Id     core.NodeId
	Label  *string
	Parent *core.NodeId
	Hidden bool
	Local  core.Transform
	Bounds *geom.AABB
}

// Store is an in-memory scene that the editor core can read and mutate.
type Store struct {
	nodes   map[core.NodeId]*Node
	order   []core.NodeId
	nextId  core.NodeId
	spawned map[uuid.UUID]core.NodeId

	// OnError receives intents that Apply could not carry out.
	OnError func(err error)
}

func New() *Store {
	return &Store{
		nodes:   make(map[core.NodeId]*Node),
		nextId:  1,
		spawned: make(map[uuid.UUID]core.NodeId),
	}
}

// Add inserts n and returns its id. A zero Id is replaced by a fresh one.
func (s *Store) Add(n Node) core.NodeId {
	if n.Id == 0 {
		n.Id = s.nextId
	}
	if n.Id >= s.nextId {
		s.nextId = n.Id + 1
	}
	if n.Local == (core.Transform{}) {
		n.Local = core.NewTransform()
	}
	if _, exists := s.nodes[n.Id]; !exists {
		s.order = append(s.order, n.Id)
	}
	node := n
	s.nodes[n.Id] = &node
	return n.Id
}

func (s *Store) Node(id core.NodeId) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

func (s *Store) Len() int {
	return len(s.nodes)
}

func (s *Store) Nodes() []core.NodeRecord {
	out := make([]core.NodeRecord, 0, len(s.order))
	for _, id := range s.order {
		n := s.nodes[id]
		rec := core.NodeRecord{Id: id, Hidden: n.Hidden}
		if n.Label != nil {
			rec.Label = core.Label(*n.Label)
		}
		if n.Parent != nil {
			rec.Parent = core.Ref(*n.Parent)
		}
		out = append(out, rec)
	}
	return out
}

// WorldTransform composes the local transforms up the parent chain. A chain
// that loops has no defined world pose. A parent that no longer exists is
// treated as the scene root.
func (s *Store) WorldTransform(id core.NodeId) (core.Transform, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return core.Transform{}, false
	}

	chain := []*Node{n}
	visited := map[core.NodeId]bool{id: true}
	for cur := n; cur.Parent != nil; {
		p, ok := s.nodes[*cur.Parent]
		if !ok {
			break
		}
		if visited[p.Id] {
			return core.Transform{}, false
		}
		visited[p.Id] = true
		chain = append(chain, p)
		cur = p
	}

	world := chain[len(chain)-1].Local
	for i := len(chain) - 2; i >= 0; i-- {
		world = world.Compose(chain[i].Local)
	}
	return world, true
}

func (s *Store) LocalBounds(id core.NodeId) (geom.AABB, bool) {
	n, ok := s.nodes[id]
	if !ok || n.Bounds == nil {
		return geom.AABB{}, false
	}
	return *n.Bounds, true
}

// Spawned returns the node created for a spawn token.
func (s *Store) Spawned(token uuid.UUID) (core.NodeId, bool) {
	id, ok := s.spawned[token]
	return id, ok
}

func (s *Store) Apply(intents []core.Intent) {
	for _, in := range intents {
		if err := s.ApplyIntent(in); err != nil && s.OnError != nil {
			s.OnError(err)
		}
	}
}

func (s *Store) ApplyIntent(in core.Intent) error {
	switch in := in.(type) {
	case core.SetParentIntent:
		return s.setParent(in.Child, in.Parent)
	case core.DeleteIntent:
		return s.delete(in.Node)
	case core.SetTransformIntent:
		return s.setWorldTransform(in.Node, in.Transform())
	case core.SpawnIntent:
		_, err := s.spawn(in)
		return err
	default:
		return fmt.Errorf("unsupported intent %T", in)
	}
}

// setParent keeps the world pose of child, recomputing its local transform
// under the new parent.
func (s *Store) setParent(child core.NodeId, parent *core.NodeId) error {
	n, ok := s.nodes[child]
	if !ok {
		return fmt.Errorf("set parent of %d: %w", child, ErrUnknownNode)
	}

	world, ok := s.WorldTransform(child)
	if !ok {
		world = n.Local
	}

	if parent == nil {
		n.Parent = nil
		n.Local = world
		return nil
	}

	if _, ok := s.nodes[*parent]; !ok {
		return fmt.Errorf("set parent of %d to %d: %w", child, *parent, ErrUnknownNode)
	}
	if *parent == child || hierarchy.NewIndex(s.Nodes()).IsDescendant(child, *parent) {
		return fmt.Errorf("set parent of %d to %d: %w", child, *parent, core.ErrInvalidHierarchyOp)
	}

	parentWorld, ok := s.WorldTransform(*parent)
	if !ok {
		parentWorld = core.NewTransform()
	}
	n.Parent = core.Ref(*parent)
	n.Local = parentWorld.Relative(world)
	return nil
}

func (s *Store) delete(id core.NodeId) error {
	if _, ok := s.nodes[id]; !ok {
		return fmt.Errorf("delete %d: %w", id, ErrUnknownNode)
	}

	doomed := map[core.NodeId]bool{id: true}
	for _, d := range hierarchy.NewIndex(s.Nodes()).Descendants(id) {
		doomed[d] = true
	}

	kept := s.order[:0]
	for _, nid := range s.order {
		if doomed[nid] {
			delete(s.nodes, nid)
			continue
		}
		kept = append(kept, nid)
	}
	s.order = kept
	return nil
}

func (s *Store) setWorldTransform(id core.NodeId, world core.Transform) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("set transform of %d: %w", id, ErrUnknownNode)
	}
	if n.Parent == nil {
		n.Local = world
		return nil
	}
	parentWorld, ok := s.WorldTransform(*n.Parent)
	if !ok {
		n.Local = world
		return nil
	}
	n.Local = parentWorld.Relative(world)
	return nil
}

func (s *Store) spawn(in core.SpawnIntent) (core.NodeId, error) {
	if in.Parent != nil {
		if _, ok := s.nodes[*in.Parent]; !ok {
			return 0, fmt.Errorf("spawn %s under %d: %w", in.Kind, *in.Parent, ErrUnknownNode)
		}
	}
	if in.Kind < core.SpawnEmpty || in.Kind > core.SpawnSpotLight {
		return 0, fmt.Errorf("spawn: unknown kind %d", int(in.Kind))
	}

	n := Node{
		Label:  core.Label(in.Kind.String()),
		Local:  core.NewTransform(),
		Bounds: BoundsFor(in.Kind),
	}
	if in.Parent != nil {
		n.Parent = core.Ref(*in.Parent)
	}
	id := s.Add(n)
	if in.Token != uuid.Nil {
		s.spawned[in.Token] = id
	}
	return id, nil
}

// BoundsFor returns the local bounds of a freshly spawned object. Empties and
// lights have no geometry and cannot be picked.
func BoundsFor(kind core.SpawnKind) *geom.AABB {
	switch kind {
	case core.SpawnCube, core.SpawnSphere:
		return &geom.AABB{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}
	case core.SpawnPlane:
		return &geom.AABB{Min: mgl32.Vec3{-0.5, 0, -0.5}, Max: mgl32.Vec3{0.5, 0, 0.5}}
	default:
		return nil
	}
}
