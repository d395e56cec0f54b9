package doom

import (
	"math"
	"testing"

	"github.com/beorn7/floats"
	"github.com/go-gl/mathgl/mgl64"
)

func pixelAt(r *Renderer, x, y int) [4]uint8 {
	i := (y*r.width + x) * 4
	var c [4]uint8
	copy(c[:], r.Pixels()[i:])
	return c
}

func TestCameraRotate(t *testing.T) {
	cam := NewCamera()
	facingLen := cam.FacingDir.Len()
	planeLen := cam.ViewPlane.Len()

	cam.Rotate(0.007)
	const e = 1e-12
	if !floats.AlmostEqual(cam.FacingDir.Len(), facingLen, e) {
		t.Errorf("facing length changed: %v -> %v", facingLen, cam.FacingDir.Len())
	}
	if !floats.AlmostEqual(cam.ViewPlane.Len(), planeLen, e) {
		t.Errorf("view plane length changed: %v -> %v", planeLen, cam.ViewPlane.Len())
	}

	cam2 := &Camera{FacingDir: mgl64.Vec2{1, 0}}
	cam2.Rotate(math.Pi / 2)
	if !floats.AlmostEqual(cam2.FacingDir.X(), 0, 1e-12) || !floats.AlmostEqual(cam2.FacingDir.Y(), 1, 1e-12) {
		t.Errorf("quarter turn of (1,0) = %v, want (0,1)", cam2.FacingDir)
	}
}

// Default camera in the default level: the center column's ray runs
// straight at the west wall four cells away, so the frame shows ceiling,
// an unshaded red wall span of height/4, then floor.
func TestRenderCenterColumn(t *testing.T) {
	r := NewRenderer(64, 64)
	r.Render(NewCamera(), DefaultMap())

	if got := pixelAt(r, 32, 0); got != ceilingColor {
		t.Errorf("top pixel = %v, want ceiling %v", got, ceilingColor)
	}
	if got := pixelAt(r, 32, 63); got != floorColor {
		t.Errorf("bottom pixel = %v, want floor %v", got, floorColor)
	}
	if got := pixelAt(r, 32, 32); got != ([4]uint8{0xFF, 0x00, 0x00, 0xFF}) {
		t.Errorf("center pixel = %v, want red wall", got)
	}
	// Wall face 4 cells away: span is height/4 centered on the horizon.
	if got := pixelAt(r, 32, 23); got != ceilingColor {
		t.Errorf("pixel above wall span = %v, want ceiling", got)
	}
	if got := pixelAt(r, 32, 41); got != floorColor {
		t.Errorf("pixel below wall span = %v, want floor", got)
	}
}

// Walls hit on the y side are shaded by 0xC0/0x100.
func TestRenderYSideShading(t *testing.T) {
	cam := &Camera{
		PlayerPos: mgl64.Vec2{5.5, 7.5},
		FacingDir: mgl64.Vec2{0, 1},
		ViewPlane: mgl64.Vec2{0.66, 0},
	}
	r := NewRenderer(64, 64)
	r.Render(cam, DefaultMap())

	want := [4]uint8{191, 0, 0, 255} // 255 * 0xC0 >> 8
	if got := pixelAt(r, 32, 32); got != want {
		t.Errorf("center pixel = %v, want shaded red %v", got, want)
	}
}

func TestRenderUnknownWallColor(t *testing.T) {
	m, err := NewMap(3, 3, []uint8{
		9, 9, 9,
		9, 0, 9,
		9, 9, 9,
	})
	if err != nil {
		t.Fatal(err)
	}
	cam := &Camera{
		PlayerPos: mgl64.Vec2{1.5, 1.5},
		FacingDir: mgl64.Vec2{1, 0},
		ViewPlane: mgl64.Vec2{0, 0.66},
	}
	r := NewRenderer(16, 16)
	r.Render(cam, m)

	if got := pixelAt(r, 8, 8); got != unknownWallColor {
		t.Errorf("center pixel = %v, want fallback %v", got, unknownWallColor)
	}
}

func TestRendererPixelsSize(t *testing.T) {
	r := NewRenderer(80, 60)
	if len(r.Pixels()) != 80*60*4 {
		t.Errorf("pixel buffer is %d bytes, want %d", len(r.Pixels()), 80*60*4)
	}
}
