package doom

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func newTestGraphics(t *testing.T, w, h int) *Graphics {
	t.Helper()
	g, err := NewGraphics(w, h, NewCamera(), DefaultMap())
	if err != nil {
		t.Fatalf("NewGraphics failed: %v", err)
	}
	return g
}

func TestNewGraphicsBadSize(t *testing.T) {
	if _, err := NewGraphics(0, 600, NewCamera(), DefaultMap()); err == nil {
		t.Error("zero width accepted, want error")
	}
	if _, err := NewGraphics(800, -1, NewCamera(), DefaultMap()); err == nil {
		t.Error("negative height accepted, want error")
	}
}

// End to end: raycast, upload, blit. The screen texture and target share
// dimensions, so the blit is texel for texel and the top-left pixel is the
// raycaster's ceiling color.
func TestGraphicsRenderFrame(t *testing.T) {
	g := newTestGraphics(t, 64, 48)
	im, err := g.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	b := im.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("frame is %dx%d, want 64x48", b.Dx(), b.Dy())
	}
	want := color.NRGBA{0x20, 0x20, 0x20, 0xFF}
	if got := im.(interface {
		NRGBAAt(x, y int) color.NRGBA
	}).NRGBAAt(0, 0); got != want {
		t.Errorf("top-left pixel = %+v, want ceiling %+v", got, want)
	}
}

func TestGraphicsResize(t *testing.T) {
	g := newTestGraphics(t, 64, 48)
	g.Resize(32, 32)
	im, err := g.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame after resize failed: %v", err)
	}
	b := im.Bounds()
	if b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("frame is %dx%d, want 32x32", b.Dx(), b.Dy())
	}

	// Degenerate sizes are ignored.
	g.Resize(0, 0)
	im, err = g.RenderFrame()
	if err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if im.Bounds().Dx() != 32 {
		t.Error("Resize(0,0) should not change dimensions")
	}
}

func TestGraphicsWriteFrame(t *testing.T) {
	g := newTestGraphics(t, 32, 24)
	var buf bytes.Buffer
	if err := g.WriteFrame(&buf); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	im, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding written frame: %v", err)
	}
	if im.Bounds().Dx() != 32 || im.Bounds().Dy() != 24 {
		t.Errorf("decoded frame is %dx%d, want 32x24", im.Bounds().Dx(), im.Bounds().Dy())
	}
}

func TestGraphicsSaveFrame(t *testing.T) {
	g := newTestGraphics(t, 16, 16)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := g.SaveFrame(path); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}
	im, err := LoadImage(path)
	if err != nil {
		t.Fatalf("reading saved frame: %v", err)
	}
	if im.Bounds().Dx() != 16 {
		t.Errorf("saved frame width = %d, want 16", im.Bounds().Dx())
	}
}

// Rotating between frames changes the rendered view.
func TestGraphicsCameraRotation(t *testing.T) {
	g := newTestGraphics(t, 64, 64)
	if _, err := g.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	firstPix := append([]uint8(nil), g.context.ColorBuffer.Pix...)

	for i := 0; i < 50; i++ {
		g.Camera().Rotate(0.05)
	}
	if _, err := g.RenderFrame(); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(firstPix, g.context.ColorBuffer.Pix) {
		t.Error("frame unchanged after rotating the camera")
	}
}
