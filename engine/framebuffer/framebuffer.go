// Package framebuffer owns the packed color buffer and the per-pixel depth buffer that
// the rasterizer writes into.
package framebuffer

import (
	"image"
	"math"
)

// Framebuffer is a fixed-size row-major grid of packed 0xRRGGBB pixels plus a depth
// buffer of the same size. Depth values start at +Inf after Clear and only ever
// decrease within a frame: a write succeeds only when it is nearer than what is stored.
//
// A Framebuffer is owned by the render loop and is not safe for concurrent use.
type Framebuffer struct {
	width      int
	height     int
	buffer     []uint32
	depth      []float32
	background uint32
}

// New creates a framebuffer of the given size, cleared to the background color.
// Non-positive dimensions produce an empty framebuffer that rejects every write.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//   - options: functional options applied before the initial clear
//
// Returns:
//   - *Framebuffer: the new framebuffer
func New(width, height int, options ...FramebufferBuilderOption) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	fb := &Framebuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
		depth:  make([]float32, width*height),
	}
	for _, option := range options {
		option(fb)
	}
	fb.Clear()
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// BackgroundColor returns the packed color Clear fills the buffer with.
func (fb *Framebuffer) BackgroundColor() uint32 { return fb.background }

// SetBackgroundColor changes the clear color. It takes effect on the next Clear.
func (fb *Framebuffer) SetBackgroundColor(c uint32) {
	fb.background = c & 0xFFFFFF
}

// Clear resets every pixel to the background color and every depth cell to +Inf.
func (fb *Framebuffer) Clear() {
	n := len(fb.buffer)
	if n == 0 {
		return
	}
	// copy-doubling fill
	fb.buffer[0] = fb.background
	for i := 1; i < n; i *= 2 {
		copy(fb.buffer[i:], fb.buffer[:i])
	}
	inf := float32(math.Inf(1))
	fb.depth[0] = inf
	for i := 1; i < n; i *= 2 {
		copy(fb.depth[i:], fb.depth[:i])
	}
}

// Point writes c at (x, y) if the pixel is inside the buffer and depth is strictly
// nearer than the stored depth, in which case the depth buffer is updated too.
//
// Parameters:
//   - x, y: pixel coordinates, origin at the top-left
//   - depth: candidate depth, smaller is nearer
//   - c: packed 0xRRGGBB color
//
// Returns:
//   - bool: true if the pixel was written
func (fb *Framebuffer) Point(x, y int, depth float32, c uint32) bool {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return false
	}
	i := y*fb.width + x
	if !(depth < fb.depth[i]) {
		return false
	}
	fb.depth[i] = depth
	fb.buffer[i] = c & 0xFFFFFF
	return true
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// At returns the packed color at (x, y), or 0 outside the buffer.
func (fb *Framebuffer) At(x, y int) uint32 {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.buffer[y*fb.width+x]
}

// Depth returns the stored depth at (x, y), or +Inf outside the buffer.
func (fb *Framebuffer) Depth(x, y int) float32 {
	if !fb.InBounds(x, y) {
		return float32(math.Inf(1))
	}
	return fb.depth[y*fb.width+x]
}

// Buffer returns the raw row-major pixel slice for presentation. The slice aliases the
// framebuffer's storage; callers must not retain it across frames.
func (fb *Framebuffer) Buffer() []uint32 {
	return fb.buffer
}

// Image copies the buffer into an opaque RGBA image.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA expands the packed pixels into dst as 4-byte R, G, B, A groups.
// dst must hold at least Width*Height*4 bytes; extra pixels are ignored.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	for i, p := range fb.buffer {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		dst[j+0] = byte(p >> 16)
		dst[j+1] = byte(p >> 8)
		dst[j+2] = byte(p)
		dst[j+3] = 0xFF
	}
}
