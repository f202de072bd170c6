package sceneedit

import (
	"errors"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/gizmo"
	"github.com/gekko3d/sceneedit/rt/hierarchy"
	"github.com/gekko3d/sceneedit/rt/picking"
	"github.com/google/uuid"
)

// SpawnResolver is implemented by stores that can report which node they
// created for a spawn token.
type SpawnResolver interface {
	Spawned(token uuid.UUID) (core.NodeId, bool)
}

// Editor is one editing session over an external scene. It is driven by
// calling Frame once per rendered frame from the UI thread.
type Editor struct {
	cfg    Config
	log    Logger
	reader core.SceneReader
	coord  *Coordinator
	scope  *core.NodeId

	selected   *core.NodeId
	mode       gizmo.Mode
	space      gizmo.Space
	activeAxis *gizmo.Axis
	focused    bool

	pendingSpawn *uuid.UUID
	snapshot     *hierarchy.Snapshot
}

type Option func(*Editor)

func WithLogger(l Logger) Option {
	return func(e *Editor) { e.log = loggerOrNop(l) }
}

func WithConfig(cfg Config) Option {
	return func(e *Editor) { e.cfg = cfg }
}

// WithScope limits the hierarchy, picking and default spawn parent to the
// subtree below root.
func WithScope(root core.NodeId) Option {
	return func(e *Editor) { e.scope = core.Ref(root) }
}

func NewEditor(reader core.SceneReader, opts ...Option) *Editor {
	e := &Editor{
		cfg:    DefaultConfig(),
		log:    NewNopLogger(),
		reader: reader,
		mode:   gizmo.Move,
		space:  gizmo.Global,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.coord = NewCoordinator(reader, e.log)
	e.snapshot = hierarchy.Build(nil, e.scope)
	return e
}

// FrameResult is everything a frame produced. Intents must be applied to the
// store after the frame, never during it.
type FrameResult struct {
	Snapshot *hierarchy.Snapshot
	Overlay  *gizmo.Overlay
	Intents  []core.Intent
}

// Frame runs one interaction frame: input state, hierarchy snapshot, gizmo
// and picking, then intent emission.
func (e *Editor) Frame(in *Input, cam core.Camera) FrameResult {
	e.resolveSpawn()
	e.updateFocus(in)
	e.handleKeys(in)

	e.snapshot = hierarchy.Build(e.reader.Nodes(), e.scope)
	if e.selected != nil && !e.snapshot.Contains(*e.selected) {
		e.log.Debugf("selected node %d is gone", *e.selected)
		e.Deselect()
	}

	overlay := e.buildOverlay(cam)
	if in.JustPressed[MouseButtonLeft] && in.ViewportHovered && !in.PointerCaptured {
		e.click(in, cam, overlay)
		// The click may have moved the selection.
		overlay = e.buildOverlay(cam)
	}
	e.drag(in, cam)

	return FrameResult{
		Snapshot: e.snapshot,
		Overlay:  overlay,
		Intents:  e.coord.Drain(),
	}
}

func (e *Editor) resolveSpawn() {
	if e.pendingSpawn == nil {
		return
	}
	resolver, ok := e.reader.(SpawnResolver)
	if !ok {
		e.pendingSpawn = nil
		return
	}
	if id, ok := resolver.Spawned(*e.pendingSpawn); ok {
		e.pendingSpawn = nil
		e.Select(id)
	}
}

func (e *Editor) updateFocus(in *Input) {
	switch {
	case in.JustPressed[KeyEscape]:
		e.SetFocused(false)
	case in.JustPressed[MouseButtonLeft]:
		e.SetFocused(in.ViewportHovered)
	case in.JustPressed[MouseButtonRight] && in.ViewportHovered:
		e.SetFocused(true)
	}
}

func (e *Editor) handleKeys(in *Input) {
	if in.KeyboardCaptured {
		return
	}
	// Right drag is camera navigation, which owns Q/W/E.
	if !in.Pressed[MouseButtonRight] {
		switch {
		case in.JustPressed[KeyQ]:
			e.SetMode(gizmo.Move)
		case in.JustPressed[KeyW]:
			e.SetMode(gizmo.Rotate)
		case in.JustPressed[KeyE]:
			e.SetMode(gizmo.Scale)
		}
	}
	if in.JustPressed[KeyDelete] && e.selected != nil {
		if _, pending := e.coord.PendingDelete(); !pending {
			e.coord.RequestDelete(*e.selected)
		}
	}
}

func (e *Editor) buildOverlay(cam core.Camera) *gizmo.Overlay {
	if e.selected == nil {
		return nil
	}
	world, ok := e.reader.WorldTransform(*e.selected)
	if !ok {
		e.log.Debugf("node %d: no transform, no gizmo: %v", *e.selected, ErrMissingComponent)
		return nil
	}
	ov, err := gizmo.BuildOverlay(cam, world, e.mode, e.space, e.cfg.Gizmo)
	if err != nil {
		e.log.Debugf("node %d: %v", *e.selected, err)
		return nil
	}
	if len(ov.Handles) == 0 {
		e.log.Debugf("node %d: gizmo handles off screen", *e.selected)
	}
	return ov
}

// click grabs a gizmo handle if one is under the pointer, and otherwise picks
// the scene, deselecting on a miss.
func (e *Editor) click(in *Input, cam core.Camera, overlay *gizmo.Overlay) {
	e.activeAxis = nil
	cursor := in.Mouse()

	if axis, ok := overlay.HitTest(cursor, e.cfg.Gizmo.HandleThreshold); ok {
		e.activeAxis = &axis
		return
	}

	ray, ok := cam.ViewportToRay(cursor)
	if !ok {
		e.log.Debugf("no pick ray at %v: %v", cursor, ErrGeometryUndefined)
		return
	}

	picker := picking.Picker{OnSkip: func(id core.NodeId, err error) {
		e.log.Debugf("pick skipped %d: %v", id, err)
	}}
	hit := picker.Pick(ray, picker.Gather(e.reader, e.visibleNodes()))
	if hit == nil {
		e.Deselect()
		return
	}
	e.Select(hit.Id)
}

func (e *Editor) visibleNodes() []core.NodeId {
	var ids []core.NodeId
	e.snapshot.Walk(func(id core.NodeId, _ int) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

func (e *Editor) drag(in *Input, cam core.Camera) {
	if in.PointerCaptured && !in.ViewportHovered {
		return
	}
	if !e.focused {
		return
	}
	if !in.Pressed[MouseButtonLeft] {
		e.activeAxis = nil
		return
	}
	if e.selected == nil {
		return
	}
	if in.Pressed[MouseButtonRight] || in.Pressed[MouseButtonMiddle] {
		return
	}
	delta := in.MouseDelta()
	if delta.X() == 0 && delta.Y() == 0 {
		return
	}

	world, ok := e.reader.WorldTransform(*e.selected)
	if !ok {
		return
	}
	next, changed := gizmo.Drag(world, e.mode, e.space, e.activeAxis, delta, cam, e.cfg.Gizmo)
	if !changed {
		return
	}
	e.coord.RequestTransform(*e.selected, next)
}

func (e *Editor) Selected() (core.NodeId, bool) {
	if e.selected == nil {
		return 0, false
	}
	return *e.selected, true
}

// Select is what a hierarchy panel click calls.
func (e *Editor) Select(id core.NodeId) {
	if e.selected != nil && *e.selected == id {
		return
	}
	e.selected = core.Ref(id)
	e.activeAxis = nil
}

func (e *Editor) Deselect() {
	e.selected = nil
	e.activeAxis = nil
}

func (e *Editor) Mode() gizmo.Mode {
	return e.mode
}

// SetMode switches the gizmo mode. Switching ends any drag in progress.
func (e *Editor) SetMode(m gizmo.Mode) {
	if m == e.mode {
		return
	}
	e.mode = m
	e.activeAxis = nil
}

func (e *Editor) Space() gizmo.Space {
	return e.space
}

func (e *Editor) SetSpace(s gizmo.Space) {
	e.space = s
}

func (e *Editor) ToggleSpace() {
	e.space = e.space.Toggle()
}

func (e *Editor) ActiveAxis() (gizmo.Axis, bool) {
	if e.activeAxis == nil {
		return gizmo.X, false
	}
	return *e.activeAxis, true
}

func (e *Editor) Focused() bool {
	return e.focused
}

// SetFocused gives or takes viewport focus. Losing focus ends any drag.
func (e *Editor) SetFocused(focused bool) {
	e.focused = focused
	if !focused {
		e.activeAxis = nil
	}
}

// Snapshot returns the hierarchy built by the last frame.
func (e *Editor) Snapshot() *hierarchy.Snapshot {
	return e.snapshot
}

// RequestReparent forwards a hierarchy drag and drop. Invalid drops are
// logged and otherwise ignored.
func (e *Editor) RequestReparent(child core.NodeId, newParent *core.NodeId) error {
	return e.coord.RequestReparent(child, newParent)
}

func (e *Editor) RequestDelete(node core.NodeId) {
	e.coord.RequestDelete(node)
}

func (e *Editor) PendingDelete() (core.NodeId, bool) {
	return e.coord.PendingDelete()
}

// ConfirmDelete emits the pending deletion and drops the selection if it was
// inside the deleted subtree.
func (e *Editor) ConfirmDelete() {
	node, ok := e.coord.ConfirmDelete()
	if !ok || e.selected == nil {
		return
	}
	if *e.selected == node || hierarchy.NewIndex(e.reader.Nodes()).IsDescendant(node, *e.selected) {
		e.Deselect()
	}
}

func (e *Editor) CancelDelete() {
	e.coord.CancelDelete()
}

// RequestSpawn creates an object of kind under parent, or under the scope
// root when parent is nil. The new node is selected once the store has it.
func (e *Editor) RequestSpawn(kind core.SpawnKind, parent *core.NodeId) {
	if parent == nil {
		parent = e.scope
	}
	token := e.coord.RequestSpawn(kind, parent)
	e.pendingSpawn = &token
}

// Intents returns the intents requested outside of Frame, for callers that
// apply UI requests immediately.
func (e *Editor) Intents() []core.Intent {
	return e.coord.Drain()
}

// Inspection describes the selection for the inspector panel.
type Inspection struct {
	Id        core.NodeId
	Label     string
	Transform *core.Transform
	Err       error
}

// Message is the text shown in place of missing data.
func (i Inspection) Message() string {
	if errors.Is(i.Err, ErrMissingComponent) {
		return "no transform component"
	}
	return ""
}

// Inspect reports the selected node. Without a selection it returns false.
func (e *Editor) Inspect() (Inspection, bool) {
	if e.selected == nil {
		return Inspection{}, false
	}
	id := *e.selected
	out := Inspection{Id: id, Label: e.snapshot.Label(id)}
	world, ok := e.reader.WorldTransform(id)
	if !ok {
		out.Err = ErrMissingComponent
		return out, true
	}
	out.Transform = &world
	return out, true
}
