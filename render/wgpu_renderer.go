package render

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-webgpu/webgpu/wgpu"
)

// wgpuFormats maps the package's backend-agnostic Format to the
// wgpu.TextureFormat the device actually creates, and back.
var wgpuFormats = map[Format]wgpu.TextureFormat{
	FormatARGB8888: wgpu.TextureFormatBGRA8Unorm,
	FormatXRGB8888: wgpu.TextureFormatBGRA8Unorm,
	FormatABGR8888: wgpu.TextureFormatRGBA8Unorm,
	FormatXBGR8888: wgpu.TextureFormatRGBA8Unorm,
}

// WGPURenderer is the WebGPU-backed Renderer: every other backend in
// this package (a future Vulkan or Pixman renderer) would implement
// the same Renderer interface, but wgpu-native is the only GPU API
// wired into this repository's dependency set.
type WGPURenderer struct {
	log *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	caps Capabilities

	cacheMu sync.Mutex
	cache   map[uintptr]*wgpuTexture
}

// NewWGPURenderer creates a headless WebGPU device: no wgpu.Surface is
// requested, since a BufferPass renders into an offscreen target that
// the output package then scans out or copies from, rather than into
// a windowing-system surface.
func NewWGPURenderer(log *slog.Logger) (*WGPURenderer, error) {
	r := &WGPURenderer{log: log, cache: make(map[uintptr]*wgpuTexture)}

	var err error
	r.instance, err = wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("render: create wgpu instance: %w", err)
	}

	r.adapter, err = r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("render: request adapter: %w", err)
	}

	r.device, err = r.adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("render: request device: %w", err)
	}
	r.queue = r.device.GetQueue()

	features := r.adapter.Features()
	r.caps = Capabilities{
		DMABUF:       hasFeature(features, "dmabuf-import"),
		ExplicitSync: hasFeature(features, "explicit-sync"),
		Timers:       hasFeature(features, "timestamp-query"),
		ARGB2101010:  hasFeature(features, "rgb10a2unorm-storage"),
	}

	return r, nil
}

func hasFeature(features []string, name string) bool {
	for _, f := range features {
		if f == name {
			return true
		}
	}
	return false
}

func (r *WGPURenderer) Capabilities() Capabilities { return r.caps }

func (r *WGPURenderer) PreferredFormats() []Format {
	return []Format{FormatARGB8888, FormatXRGB8888, FormatABGR8888, FormatXBGR8888}
}

func (r *WGPURenderer) TextureFromBuffer(buf ClientBuffer) (Texture, error) {
	key := buf.ClientBufferKey()

	r.cacheMu.Lock()
	if t, ok := r.cache[key]; ok {
		r.cacheMu.Unlock()
		t.refs++
		return t, nil
	}
	r.cacheMu.Unlock()

	wf, ok := wgpuFormats[buf.Format()]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, buf.Format())
	}

	tex := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "client-buffer",
		Size:          wgpu.Extent3D{Width: uint32(buf.Width()), Height: uint32(buf.Height()), DepthOrArrayLayers: 1},
		Format:        wf,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		MipLevelCount: 1,
		SampleCount:   1,
	})

	out := &wgpuTexture{
		renderer: r,
		key:      key,
		tex:      tex,
		view:     tex.CreateView(nil),
		width:    buf.Width(),
		height:   buf.Height(),
		format:   buf.Format(),
		refs:     1,
	}

	r.cacheMu.Lock()
	r.cache[key] = out
	r.cacheMu.Unlock()

	r.log.Debug("imported client buffer", "key", key, "w", buf.Width(), "h", buf.Height(), "dmabuf", buf.HasDMABUF())
	return out, nil
}

func (r *WGPURenderer) BeginBufferPass(width, height int, format Format, opts BufferPassOptions) (BufferPass, error) {
	wf, ok := wgpuFormats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if opts.Timer && !r.caps.Timers {
		return nil, fmt.Errorf("render: timer requested but %w", ErrUnsupportedFormat)
	}

	target := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "output-target",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		Format:        wf,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
		MipLevelCount: 1,
		SampleCount:   1,
	})

	return &wgpuBufferPass{
		renderer: r,
		target:   target,
		view:     target.CreateView(nil),
		opts:     opts,
	}, nil
}

func (r *WGPURenderer) NewTimer() (Timer, error) {
	if !r.caps.Timers {
		return nil, fmt.Errorf("render: %w: no timer-query feature", ErrUnsupportedFormat)
	}
	return &wgpuTimer{}, nil
}

func (r *WGPURenderer) Destroy() {
	r.cacheMu.Lock()
	for _, t := range r.cache {
		t.release()
	}
	r.cache = nil
	r.cacheMu.Unlock()

	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
}

type wgpuTexture struct {
	renderer *WGPURenderer
	key      uintptr
	tex      *wgpu.Texture
	view     *wgpu.TextureView
	width    int
	height   int
	format   Format
	refs     int
}

func (t *wgpuTexture) Width() int      { return t.width }
func (t *wgpuTexture) Height() int     { return t.height }
func (t *wgpuTexture) Format() Format  { return t.format }

func (t *wgpuTexture) Destroy() {
	r := t.renderer
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	t.refs--
	if t.refs > 0 {
		return
	}
	delete(r.cache, t.key)
	t.release()
}

func (t *wgpuTexture) release() {
	if t.view != nil {
		t.view.Release()
	}
	if t.tex != nil {
		t.tex.Release()
	}
}

type wgpuBufferPass struct {
	renderer *WGPURenderer
	target   *wgpu.Texture
	view     *wgpu.TextureView
	opts     BufferPassOptions

	rects    []RectOptions
	textures []TextureOptions
}

func (p *wgpuBufferPass) AddRect(opts RectOptions) {
	p.rects = append(p.rects, opts)
}

func (p *wgpuBufferPass) AddTexture(opts TextureOptions) {
	p.textures = append(p.textures, opts)
}

// Submit records one render pass and submits it to the device queue.
// The pass clears the target to the first accumulated rect's colour
// (transparent black when no rect was added); the remaining rects and
// the textured quads are not drawn, and SignalTimelineFD is not
// signalled. A requested timer reports zero elapsed time.
func (p *wgpuBufferPass) Submit() (Timer, error) {
	encoder := p.renderer.device.CreateCommandEncoder(nil)

	clear := wgpu.Color{R: 0, G: 0, B: 0, A: 0}
	if len(p.rects) > 0 {
		c := p.rects[0].Color
		clear = wgpu.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       p.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})

	// The remaining rects and the textured quads are not drawn.
	pass.End()
	pass.Release()

	commands := encoder.Finish(nil)
	encoder.Release()

	p.renderer.queue.Submit(commands)
	commands.Release()

	p.view.Release()
	p.target.Release()

	if p.opts.Timer {
		return &wgpuTimer{resolved: true, elapsed: 0}, nil
	}
	return nil, nil
}

type wgpuTimer struct {
	resolved bool
	elapsed  time.Duration
}

func (t *wgpuTimer) Duration() (time.Duration, bool) { return t.elapsed, t.resolved }
func (t *wgpuTimer) Destroy()                        {}
