package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode // defaults to PresentModeFifo (VSync)

	width, height int

	// staging holds the frame converted to the surface's byte order.
	staging []byte
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// uploadFormats lists the surface formats a packed RGB frame can be written to without a shader.
var uploadFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatBGRA8UnormSrgb,
	wgpu.TextureFormatBGRA8Unorm,
	wgpu.TextureFormatRGBA8UnormSrgb,
	wgpu.TextureFormatRGBA8Unorm,
}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Present Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	format, ok := pickUploadFormat(capabilities.Formats)
	if !ok {
		return fmt.Errorf("surface offers no 8-bit RGBA or BGRA format: %v", capabilities.Formats)
	}
	b.surfaceFormat = format

	// The frame is copied straight into the swapchain image, so it must accept copies.
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopyDst,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.width, b.height = width, height
	b.staging = make([]byte, width*height*4)
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) Present(buf []uint32, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width != b.width || height != b.height {
		return fmt.Errorf("frame is %dx%d but surface is configured for %dx%d", width, height, b.width, b.height)
	}
	if len(buf) < width*height {
		return fmt.Errorf("frame buffer holds %d pixels, need %d", len(buf), width*height)
	}

	packPixels(b.staging, buf[:width*height], isBGRA(b.surfaceFormat))

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  surfaceTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		b.staging,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width) * 4,
			RowsPerImage: uint32(height),
		},
		&wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
	)

	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func pickUploadFormat(offered []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	for _, want := range uploadFormats {
		for _, f := range offered {
			if f == want {
				return f, true
			}
		}
	}
	return wgpu.TextureFormatUndefined, false
}

func isBGRA(f wgpu.TextureFormat) bool {
	return f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatBGRA8UnormSrgb
}

// packPixels expands packed 0xRRGGBB pixels into 4-byte opaque texels in dst.
func packPixels(dst []byte, src []uint32, bgra bool) {
	for i, p := range src {
		r, g, b := byte(p>>16), byte(p>>8), byte(p)
		o := i * 4
		if bgra {
			dst[o], dst[o+1], dst[o+2] = b, g, r
		} else {
			dst[o], dst[o+1], dst[o+2] = r, g, b
		}
		dst[o+3] = 0xFF
	}
}
