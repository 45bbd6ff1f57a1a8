package framebuffer

// FramebufferBuilderOption is a functional option for configuring a Framebuffer via New.
type FramebufferBuilderOption func(*Framebuffer)

// WithBackgroundColor sets the packed 0xRRGGBB color used by Clear.
//
// Parameters:
//   - c: background color
//
// Returns:
//   - FramebufferBuilderOption: option function to apply
func WithBackgroundColor(c uint32) FramebufferBuilderOption {
	return func(fb *Framebuffer) {
		fb.SetBackgroundColor(c)
	}
}
