package sceneedit

import "github.com/gekko3d/sceneedit/rt/core"

// The failure kinds of the editor core. None of them is fatal: the feature
// that hit one is skipped for the frame.
var (
	ErrGeometryUndefined  = core.ErrGeometryUndefined
	ErrInvalidHierarchyOp = core.ErrInvalidHierarchyOp
	ErrMissingComponent   = core.ErrMissingComponent
)
