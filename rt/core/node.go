package core

import (
	"errors"

	"github.com/gekko3d/sceneedit/rt/geom"
)

// NodeId is the opaque handle of a scene object owned by the external store.
// Only equality is meaningful.
type NodeId uint64

// NodeRecord is one row of the store's hierarchy enumeration.
type NodeRecord struct {
	Id     NodeId
	Label  *string // nil when the object has no name
	Parent *NodeId // nil for top-level objects
	Hidden bool    // editor-internal helpers (gizmos, UI, cameras)
}

var (
	ErrGeometryUndefined  = errors.New("geometry undefined")
	ErrMissingComponent   = errors.New("missing component")
	ErrInvalidHierarchyOp = errors.New("invalid hierarchy operation")
)

// SceneReader is the read side of the external entity store.
type SceneReader interface {
	Nodes() []NodeRecord
	WorldTransform(id NodeId) (Transform, bool)
	LocalBounds(id NodeId) (geom.AABB, bool)
}

// IntentSink applies mutation intents after the frame that produced them.
type IntentSink interface {
	Apply(intents []Intent)
}

// Store is both sides of the external entity store.
type Store interface {
	SceneReader
	IntentSink
}

// Label returns a pointer to s, for building records.
func Label(s string) *string {
	return &s
}

// Ref returns a pointer to id, for optional ids such as parents, the
// selection or a scope root.
func Ref(id NodeId) *NodeId {
	return &id
}
