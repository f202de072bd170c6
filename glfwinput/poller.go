package glfwinput

import (
	"github.com/gekko3d/sceneedit"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the part of *glfw.Window the poller reads.
type Window interface {
	GetKey(key glfw.Key) glfw.Action
	GetMouseButton(button glfw.MouseButton) glfw.Action
	GetCursorPos() (x, y float64)
	SetScrollCallback(cbfun glfw.ScrollCallback) glfw.ScrollCallback
}

// Rect is the viewport area inside the window, in window pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Poller fills a sceneedit.Input from a GLFW window once per frame.
type Poller struct {
	win Window

	// Viewport is where the 3D view is drawn. Mouse coordinates are reported
	// relative to it.
	Viewport Rect
	// WantsPointer and WantsKeyboard tell whether the widget layer owns the
	// devices this frame. Nil means never.
	WantsPointer  func() bool
	WantsKeyboard func() bool

	pollEvents     func()
	scrollX        float64
	scrollY        float64
	lastX, lastY   float64
	havePrevCursor bool
}

func New(win *glfw.Window, viewport Rect) *Poller {
	return newPoller(win, viewport, glfw.PollEvents)
}

func newPoller(win Window, viewport Rect, pollEvents func()) *Poller {
	p := &Poller{win: win, Viewport: viewport, pollEvents: pollEvents}
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		p.scrollX += xoff
		p.scrollY += yoff
	})
	return p
}

var keyToGlfw = map[sceneedit.Key]glfw.Key{
	sceneedit.KeyQ:         glfw.KeyQ,
	sceneedit.KeyW:         glfw.KeyW,
	sceneedit.KeyE:         glfw.KeyE,
	sceneedit.KeyR:         glfw.KeyR,
	sceneedit.KeyF:         glfw.KeyF,
	sceneedit.KeyEscape:    glfw.KeyEscape,
	sceneedit.KeyDelete:    glfw.KeyDelete,
	sceneedit.KeyBackspace: glfw.KeyBackspace,
	sceneedit.KeyEnter:     glfw.KeyEnter,
	sceneedit.KeyShift:     glfw.KeyLeftShift,
	sceneedit.KeyControl:   glfw.KeyLeftControl,
	sceneedit.KeyLeftAlt:   glfw.KeyLeftAlt,
}

var buttonToGlfw = map[sceneedit.Key]glfw.MouseButton{
	sceneedit.MouseButtonLeft:   glfw.MouseButtonLeft,
	sceneedit.MouseButtonRight:  glfw.MouseButtonRight,
	sceneedit.MouseButtonMiddle: glfw.MouseButtonMiddle,
}

// Poll pumps the GLFW event queue and writes this frame's state into in.
func (p *Poller) Poll(in *sceneedit.Input) {
	in.EndFrame()
	if p.pollEvents != nil {
		p.pollEvents()
	}

	for key, glfwKey := range keyToGlfw {
		update(in, key, p.win.GetKey(glfwKey))
	}
	for btn, glfwBtn := range buttonToGlfw {
		update(in, btn, p.win.GetMouseButton(glfwBtn))
	}

	mx, my := p.win.GetCursorPos()
	if p.havePrevCursor {
		in.MouseDeltaX = mx - p.lastX
		in.MouseDeltaY = my - p.lastY
	}
	p.lastX, p.lastY = mx, my
	p.havePrevCursor = true

	in.MouseX = mx - p.Viewport.X
	in.MouseY = my - p.Viewport.Y
	in.ScrollX, in.ScrollY = p.scrollX, p.scrollY
	p.scrollX, p.scrollY = 0, 0

	in.ViewportHovered = p.Viewport.Contains(mx, my)
	in.PointerCaptured = p.WantsPointer != nil && p.WantsPointer()
	in.KeyboardCaptured = p.WantsKeyboard != nil && p.WantsKeyboard()
}

func update(in *sceneedit.Input, key sceneedit.Key, action glfw.Action) {
	switch action {
	case glfw.Press, glfw.Repeat:
		in.Press(key)
	case glfw.Release:
		in.Release(key)
	}
}
