//go:build linux

package drm

import (
	"errors"
	"log/slog"
	"testing"
)

type fakeBuffer struct {
	attrs DMABufAttributes
	ok    bool
}

func (b *fakeBuffer) DMABuf() (DMABufAttributes, bool) {
	return b.attrs, b.ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestFormatSetHasUnrestrictedWhenNil(t *testing.T) {
	var fs *FormatSet
	if !fs.Has(fourccARGB8888, modifierLinear) {
		t.Error("nil FormatSet should report every format as supported")
	}
}

func TestFormatSetAddAndHas(t *testing.T) {
	fs := NewFormatSet([]uint32{fourccXRGB8888})
	if !fs.Has(fourccXRGB8888, modifierLinear) {
		t.Error("expected XRGB8888/linear to be present")
	}
	if fs.Has(fourccARGB8888, modifierLinear) {
		t.Error("ARGB8888 was never added, should not be present")
	}
	fs.Add(fourccARGB8888, 0xdeadbeef)
	if !fs.Has(fourccARGB8888, 0xdeadbeef) {
		t.Error("expected explicitly-added format/modifier pair to be present")
	}
}

func TestFBCacheImportCacheHit(t *testing.T) {
	c := newFBCache(nil, discardLogger(), true)
	buf := &fakeBuffer{ok: true}
	want := &Framebuffer{ID: 42, backend: c, buf: buf}
	c.imported[buf] = want

	got, err := c.Import(buf, nil)
	if err != nil {
		t.Fatalf("Import() on cached buffer returned error: %v", err)
	}
	if got != want {
		t.Errorf("Import() = %v, want cached %v", got, want)
	}
}

func TestFBCacheImportPoisoned(t *testing.T) {
	c := newFBCache(nil, discardLogger(), true)
	buf := &fakeBuffer{ok: true}
	c.poisoned[buf] = true

	_, err := c.Import(buf, nil)
	if !errors.Is(err, ErrBufferPoisoned) {
		t.Errorf("Import() on poisoned buffer = %v, want ErrBufferPoisoned", err)
	}
}

func TestFBCacheImportRejectsUnsupportedFormat(t *testing.T) {
	c := newFBCache(nil, discardLogger(), true)
	buf := &fakeBuffer{ok: true, attrs: DMABufAttributes{
		Width: 1920, Height: 1080,
		Format:   fourccABGR8888,
		Modifier: modifierLinear,
		Planes:   []DMABufPlane{{FD: 3, Pitch: 7680, Offset: 0}},
	}}
	// Plane only advertises XRGB8888; ABGR8888 has no opaque substitute
	// that matches either, so Import must fail before ever calling
	// into the kernel.
	formats := NewFormatSet([]uint32{fourccXRGB8888})

	_, err := c.Import(buf, formats)
	if !errors.Is(err, ErrBufferNotScanoutCapable) {
		t.Errorf("Import() with unsupported format = %v, want ErrBufferNotScanoutCapable", err)
	}
	if c.poisoned[buf] {
		t.Error("a format rejection should not poison the buffer; it never reached the kernel")
	}
}

func TestOpaqueSubstituteCoversAlphaFormats(t *testing.T) {
	cases := []struct {
		alpha, opaque uint32
	}{
		{fourccARGB8888, fourccXRGB8888},
		{fourccABGR8888, fourccXBGR8888},
	}
	for _, c := range cases {
		sub, ok := opaqueSubstitute[c.alpha]
		if !ok {
			t.Errorf("opaqueSubstitute has no entry for %#x", c.alpha)
			continue
		}
		if sub != c.opaque {
			t.Errorf("opaqueSubstitute[%#x] = %#x, want %#x", c.alpha, sub, c.opaque)
		}
	}
}
