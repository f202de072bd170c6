package sceneedit

import (
	"fmt"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/hierarchy"
	"github.com/google/uuid"
)

// Coordinator validates hierarchy mutations and buffers the resulting
// intents until the end of the frame.
type Coordinator struct {
	reader core.SceneReader
	log    Logger

	pendingDelete *core.NodeId
	intents       []core.Intent
}

func NewCoordinator(reader core.SceneReader, log Logger) *Coordinator {
	return &Coordinator{reader: reader, log: loggerOrNop(log)}
}

// RequestReparent moves child under newParent, or to the top level when
// newParent is nil. Moving a node under itself or under one of its own
// descendants is rejected with ErrInvalidHierarchyOp and emits nothing.
func (c *Coordinator) RequestReparent(child core.NodeId, newParent *core.NodeId) error {
	if newParent != nil {
		if *newParent == child {
			err := fmt.Errorf("reparent %d under itself: %w", child, ErrInvalidHierarchyOp)
			c.log.Debugf("%v", err)
			return err
		}
		if hierarchy.NewIndex(c.reader.Nodes()).IsDescendant(child, *newParent) {
			err := fmt.Errorf("reparent %d under its descendant %d: %w", child, *newParent, ErrInvalidHierarchyOp)
			c.log.Debugf("%v", err)
			return err
		}
	}

	in := core.SetParentIntent{Child: child}
	if newParent != nil {
		in.Parent = core.Ref(*newParent)
	}
	c.intents = append(c.intents, in)
	return nil
}

// RequestDelete asks for confirmation before node and its subtree are
// removed. A newer request replaces one still pending.
func (c *Coordinator) RequestDelete(node core.NodeId) {
	c.pendingDelete = core.Ref(node)
}

func (c *Coordinator) PendingDelete() (core.NodeId, bool) {
	if c.pendingDelete == nil {
		return 0, false
	}
	return *c.pendingDelete, true
}

// ConfirmDelete emits the pending deletion and returns the node it targets.
func (c *Coordinator) ConfirmDelete() (core.NodeId, bool) {
	if c.pendingDelete == nil {
		return 0, false
	}
	node := *c.pendingDelete
	c.pendingDelete = nil
	c.intents = append(c.intents, core.DeleteIntent{Node: node})
	c.log.Infof("deleting node %d", node)
	return node, true
}

func (c *Coordinator) CancelDelete() {
	c.pendingDelete = nil
}

// RequestSpawn emits a spawn of kind under parent. The returned token is how
// the store reports the new node back.
func (c *Coordinator) RequestSpawn(kind core.SpawnKind, parent *core.NodeId) uuid.UUID {
	token := uuid.New()
	in := core.SpawnIntent{Kind: kind, Token: token}
	if parent != nil {
		in.Parent = core.Ref(*parent)
	}
	c.intents = append(c.intents, in)
	c.log.Infof("spawning %s (%s)", kind, token)
	return token
}

// RequestTransform emits a new world pose for node.
func (c *Coordinator) RequestTransform(node core.NodeId, world core.Transform) {
	c.intents = append(c.intents, core.SetTransformIntent{
		Node:        node,
		Translation: world.Position,
		Rotation:    world.Rotation,
		Scale:       world.Scale,
	})
}

// Drain hands over the buffered intents and resets the buffer.
func (c *Coordinator) Drain() []core.Intent {
	out := c.intents
	c.intents = nil
	return out
}
