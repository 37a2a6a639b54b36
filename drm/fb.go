//go:build linux

package drm

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// FormatSet is a plane's advertised format+modifier set; its Has method
// reports whether (format, modifier) is present. A nil set means "no
// restriction known", matching the render pass's guest behaviour when
// IN_FORMATS isn't exposed.
type FormatSet struct {
	entries map[uint32]map[uint64]bool
}

// NewFormatSet builds a FormatSet from a plane's flat format list,
// each paired with the implicit DRM_FORMAT_MOD_LINEAR modifier; richer
// sets (from the IN_FORMATS blob) can be merged in with Add.
func NewFormatSet(formats []uint32) *FormatSet {
	fs := &FormatSet{entries: make(map[uint32]map[uint64]bool, len(formats))}
	for _, f := range formats {
		fs.Add(f, modifierLinear)
	}
	return fs
}

const (
	modifierInvalid = ^uint64(0)
	modifierLinear  = 0
)

// Add records format/modifier as supported.
func (fs *FormatSet) Add(format uint32, modifier uint64) {
	if fs.entries[format] == nil {
		fs.entries[format] = make(map[uint64]bool)
	}
	fs.entries[format][modifier] = true
}

// Has reports whether format/modifier is supported.
func (fs *FormatSet) Has(format uint32, modifier uint64) bool {
	if fs == nil {
		return true
	}
	mods, ok := fs.entries[format]
	if !ok {
		return false
	}
	return mods[modifier]
}

// opaqueSubstitute maps a format with an alpha channel to the
// equivalent opaque format, the fallback fb.c tries before giving up
// on an unsupported format.
var opaqueSubstitute = map[uint32]uint32{
	fourccARGB8888: fourccXRGB8888,
	fourccABGR8888: fourccXBGR8888,
}

const (
	fourccARGB8888 = 0x34325241 // 'AR24'
	fourccXRGB8888 = 0x34325258 // 'XR24'
	fourccABGR8888 = 0x34324241 // 'AB24'
	fourccXBGR8888 = 0x34324258 // 'XB24'
)

// DMABufPlane describes one plane of an imported DMA-BUF buffer.
type DMABufPlane struct {
	FD     int
	Pitch  uint32
	Offset uint32
}

// DMABufAttributes is the minimal set of a client buffer's DMA-BUF
// description the import path needs: format, modifier, and per-plane
// fd/pitch/offset.
type DMABufAttributes struct {
	Width, Height uint32
	Format        uint32
	Modifier      uint64
	Planes        []DMABufPlane
}

// BufferSource is anything the framebuffer cache can import: a
// client buffer that can hand back its DMA-BUF attributes. Buffers
// that can't (shm-only, software-rendered) simply return ok=false and
// take the render-pass path instead of scan-out.
type BufferSource interface {
	DMABuf() (DMABufAttributes, bool)
}

// Framebuffer is an imported KMS framebuffer object: the handle the
// atomic/legacy/liftoff drivers attach to a plane's FB_ID property.
type Framebuffer struct {
	ID      uint32
	backend *FBCache
	buf     BufferSource
}

// FBCache is the framebuffer import cache: one entry per buffer
// currently importable into KMS, keyed by buffer identity so a buffer
// submitted every frame is only imported into the kernel once.
//
// Grounded on original_source/wlroots backend/drm/fb.c: the addon
// lookup that makes import idempotent per (backend, buffer) pair, the
// opaque-substitute fallback, the poison set for buffers KMS refuses,
// and drmModeAddFB2 → legacy drmModeAddFB ARGB8888 single-plane
// fallback.
type FBCache struct {
	file *os.File
	log  *slog.Logger

	addfb2Modifiers bool

	mu       sync.Mutex
	imported map[BufferSource]*Framebuffer
	poisoned map[BufferSource]bool
}

func newFBCache(f *os.File, log *slog.Logger, addfb2Modifiers bool) *FBCache {
	return &FBCache{
		file:            f,
		log:             log,
		addfb2Modifiers: addfb2Modifiers,
		imported:        make(map[BufferSource]*Framebuffer),
		poisoned:        make(map[BufferSource]bool),
	}
}

// Import resolves buf to a Framebuffer, reusing a cached import when
// one already exists. Returns ErrBufferPoisoned without retrying the
// kernel if a previous import of this exact buffer failed.
func (c *FBCache) Import(buf BufferSource, formats *FormatSet) (*Framebuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fb, ok := c.imported[buf]; ok {
		return fb, nil
	}
	if c.poisoned[buf] {
		return nil, ErrBufferPoisoned
	}

	attrs, ok := buf.DMABuf()
	if !ok {
		return nil, fmt.Errorf("drm: buffer has no DMA-BUF attributes")
	}

	format := attrs.Format
	if formats != nil && !formats.Has(format, attrs.Modifier) {
		sub, ok := opaqueSubstitute[format]
		if !ok || !formats.Has(sub, attrs.Modifier) {
			c.log.Debug("buffer format cannot be scanned out", "format", format, "modifier", attrs.Modifier)
			return nil, ErrBufferNotScanoutCapable
		}
		format = sub
	}

	handles, err := c.primeImportHandles(attrs)
	if err != nil {
		return nil, err
	}
	defer c.closeHandles(handles)

	id, err := c.addFBForHandles(attrs, format, handles)
	if err != nil || id == 0 {
		c.poisoned[buf] = true
		c.log.Debug("failed to import buffer into KMS, poisoning", "error", err)
		return nil, ErrBufferNotScanoutCapable
	}

	fb := &Framebuffer{ID: id, backend: c, buf: buf}
	c.imported[buf] = fb
	return fb, nil
}

func (c *FBCache) primeImportHandles(attrs DMABufAttributes) ([4]uint32, error) {
	var handles [4]uint32
	for i, p := range attrs.Planes {
		if i >= 4 {
			break
		}
		h, err := primeFDToHandle(c.file, p.FD)
		if err != nil {
			c.closeHandles(handles)
			return handles, fmt.Errorf("import DMA-BUF plane %d: %w", i, err)
		}
		handles[i] = h
	}
	return handles, nil
}

// closeHandles closes every distinct GEM handle, skipping handles
// shared across planes so the same handle isn't double-closed.
func (c *FBCache) closeHandles(handles [4]uint32) {
	for i, h := range handles {
		if h == 0 {
			continue
		}
		dup := false
		for j := 0; j < i; j++ {
			if handles[j] == h {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		if err := closeBufferHandle(c.file, h); err != nil {
			c.log.Warn("failed to close GEM handle", "handle", h, "error", err)
		}
	}
}

func (c *FBCache) addFBForHandles(attrs DMABufAttributes, format uint32, handles [4]uint32) (uint32, error) {
	var pitches, offsets [4]uint32
	var modifiers [4]uint64
	for i, p := range attrs.Planes {
		if i >= 4 {
			break
		}
		pitches[i] = p.Pitch
		offsets[i] = p.Offset
		if attrs.Modifier != modifierInvalid {
			modifiers[i] = attrs.Modifier
		}
	}

	withModifiers := c.addfb2Modifiers && attrs.Modifier != modifierInvalid
	if !withModifiers && attrs.Modifier != modifierInvalid && attrs.Modifier != modifierLinear {
		return 0, fmt.Errorf("drm: cannot import framebuffer with explicit modifier 0x%x and no ADDFB2_MODIFIERS support", attrs.Modifier)
	}

	id, err := addFB2(c.file, attrs.Width, attrs.Height, format, handles, pitches, offsets, modifiers, withModifiers)
	if err == nil {
		return id, nil
	}
	c.log.Debug("drmModeAddFB2 failed", "error", err)

	if format == fourccARGB8888 && len(attrs.Planes) == 1 && attrs.Planes[0].Offset == 0 {
		id, err2 := addFB(c.file, attrs.Width, attrs.Height, 24, 32, pitches[0], handles[0])
		if err2 == nil {
			return id, nil
		}
		c.log.Debug("legacy drmModeAddFB fallback failed", "error", err2)
	}
	return 0, err
}

// Release drops the cache's reference to fb's buffer and closes the
// KMS framebuffer object.
func (c *FBCache) Release(fb *Framebuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.imported, fb.buf)
	if err := rmFB(c.file, fb.ID); err != nil {
		c.log.Warn("failed to close KMS framebuffer", "fb_id", fb.ID, "error", err)
	}
}
