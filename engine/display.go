package engine

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/renderer"
	"github.com/Carmen-Shannon/oxy-raster/engine/window"
)

// Display shows finished frames and reports keyboard state.
type Display interface {
	// Present shows buf, a row-major slice of packed 0xRRGGBB pixels.
	//
	// Parameters:
	//   - buf: width*height pixels
	//   - width: the frame width in pixels
	//   - height: the frame height in pixels
	//
	// Returns:
	//   - error: error if the frame could not be shown; this ends the frame loop
	Present(buf []uint32, width, height int) error

	// ShouldClose reports whether the user asked to quit.
	ShouldClose() bool

	// IsKeyDown reports whether a key (see common key codes) is held.
	IsKeyDown(key uint32) bool

	// PollEvents processes pending input without blocking.
	PollEvents()
}

// sizer is implemented by displays whose size can change while running.
type sizer interface {
	Size() (width, height int)
}

// scroller is implemented by displays that report mouse wheel movement.
type scroller interface {
	// TakeScroll returns the wheel movement since the last call and resets it.
	TakeScroll() float32
}

// presser is implemented by displays that report individual key presses, so a tap that starts
// and ends between two frames is not lost.
type presser interface {
	// TakePresses returns the keys pressed since the last call and resets the list.
	TakePresses() []uint32
}

// windowDisplay presents through a renderer backend into a platform window.
type windowDisplay struct {
	win     window.Window
	r       renderer.Renderer
	scroll  float32
	presses []uint32
}

var (
	_ Display  = &windowDisplay{}
	_ sizer    = &windowDisplay{}
	_ scroller = &windowDisplay{}
	_ presser  = &windowDisplay{}
)

// NewWindowDisplay adapts a window and a renderer created with that window into a Display.
// Window resizes reconfigure the renderer's surface. Scroll and key press events are accumulated
// until the frame loop collects them.
//
// Parameters:
//   - win: the platform window
//   - r: a renderer bound to win
//
// Returns:
//   - Display: the adapter
func NewWindowDisplay(win window.Window, r renderer.Renderer) Display {
	d := &windowDisplay{win: win, r: r}
	win.SetResizeCallback(func(width, height int) {
		if err := r.Resize(width, height); err != nil {
			common.Logger().Warn("failed to resize surface", "width", width, "height", height, "err", err)
		}
	})
	win.SetScrollCallback(func(delta float32) {
		d.scroll += delta
	})
	win.SetKeyDownCallback(func(keyCode uint32) {
		d.presses = append(d.presses, keyCode)
	})
	return d
}

func (d *windowDisplay) Present(buf []uint32, width, height int) error {
	return d.r.Present(buf, width, height)
}

func (d *windowDisplay) ShouldClose() bool {
	return !d.win.IsRunning()
}

func (d *windowDisplay) IsKeyDown(key uint32) bool {
	return d.win.IsKeyDown(key)
}

func (d *windowDisplay) PollEvents() {
	d.win.PollEvents()
}

func (d *windowDisplay) Size() (int, int) {
	return d.win.Width(), d.win.Height()
}

func (d *windowDisplay) TakeScroll() float32 {
	s := d.scroll
	d.scroll = 0
	return s
}

func (d *windowDisplay) TakePresses() []uint32 {
	p := d.presses
	d.presses = nil
	return p
}
