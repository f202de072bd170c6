package sceneedit

import "github.com/go-gl/mathgl/mgl32"

type Key int

const (
	KeyQ Key = iota
	KeyW
	KeyE
	KeyR
	KeyF
	KeyEscape
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	keyCount
)

// Modifiers is a bit set of the held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

// Input is the polled device state for one frame. Mouse coordinates are in
// viewport pixels with the origin at the top left.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollX, ScrollY         float64

	// ViewportHovered is set while the pointer is over the 3D viewport.
	ViewportHovered bool
	// PointerCaptured is set while another widget owns the pointer.
	PointerCaptured bool
	// KeyboardCaptured is set while a text field owns the keyboard.
	KeyboardCaptured bool
}

// Press marks k as held, flagging the transition when it was up.
func (in *Input) Press(k Key) {
	if !in.Pressed[k] {
		in.JustPressed[k] = true
	}
	in.Pressed[k] = true
}

// Release marks k as up, flagging the transition when it was held.
func (in *Input) Release(k Key) {
	if in.Pressed[k] {
		in.JustReleased[k] = true
	}
	in.Pressed[k] = false
}

// EndFrame clears the per-frame edge flags and the motion delta.
func (in *Input) EndFrame() {
	in.JustPressed = [keyCount]bool{}
	in.JustReleased = [keyCount]bool{}
	in.MouseDeltaX, in.MouseDeltaY = 0, 0
	in.ScrollX, in.ScrollY = 0, 0
}

func (in *Input) Modifiers() Modifiers {
	var m Modifiers
	if in.Pressed[KeyShift] {
		m |= ModShift
	}
	if in.Pressed[KeyControl] {
		m |= ModControl
	}
	if in.Pressed[KeyLeftAlt] {
		m |= ModAlt
	}
	return m
}

func (in *Input) Mouse() mgl32.Vec2 {
	return mgl32.Vec2{float32(in.MouseX), float32(in.MouseY)}
}

func (in *Input) MouseDelta() mgl32.Vec2 {
	return mgl32.Vec2{float32(in.MouseDeltaX), float32(in.MouseDeltaY)}
}
