package doom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera fixes the player position, facing direction and view plane for the
// raycaster. The view plane is perpendicular to the facing direction; its
// length controls the field of view.
type Camera struct {
	PlayerPos mgl64.Vec2
	FacingDir mgl64.Vec2
	ViewPlane mgl64.Vec2
}

// NewCamera places the player in the middle of the default level.
func NewCamera() *Camera {
	return &Camera{
		PlayerPos: mgl64.Vec2{5, 5},
		FacingDir: mgl64.Vec2{-1, 0.1},
		ViewPlane: mgl64.Vec2{0, 0.66},
	}
}

// Rotate turns the facing direction and view plane by angle radians.
func (c *Camera) Rotate(angle float64) {
	rot := mgl64.Rotate2D(angle)
	c.FacingDir = rot.Mul2x1(c.FacingDir)
	c.ViewPlane = rot.Mul2x1(c.ViewPlane)
}

var wallColors = map[uint8][4]uint8{
	1: {0xFF, 0x00, 0x00, 0xFF},
	2: {0x00, 0xFF, 0x00, 0xFF},
	3: {0x00, 0x00, 0xFF, 0xFF},
}

var (
	unknownWallColor = [4]uint8{0xFF, 0x00, 0xFF, 0xFF}
	ceilingColor     = [4]uint8{0x20, 0x20, 0x20, 0xFF}
	floorColor       = [4]uint8{0x40, 0x40, 0x40, 0xFF}
)

// Renderer draws the level into an RGBA8 pixel buffer, one DDA ray per
// screen column. The buffer is sized for the screen texture the blit
// pipeline samples.
type Renderer struct {
	width  int
	height int
	pixels []uint8
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		pixels: make([]uint8, width*height*4),
	}
}

// Pixels returns the last rendered frame as tightly packed RGBA8 rows.
func (r *Renderer) Pixels() []uint8 {
	return r.pixels
}

// Render casts one ray per column through the map and fills the column with
// ceiling, wall and floor spans. Wall faces hit on the y side are shaded
// darker.
func (r *Renderer) Render(cam *Camera, m *Map) {
	for x := 0; x < r.width; x++ {
		xcam := 2*(float64(x)/float64(r.width)) - 1
		ray := cam.FacingDir.Add(cam.ViewPlane.Mul(xcam))

		pos := cam.PlayerPos
		ix := int(math.Floor(pos.X()))
		iy := int(math.Floor(pos.Y()))

		deltaX := rayDelta(ray.X())
		deltaY := rayDelta(ray.Y())

		var stepX, stepY int
		var sideX, sideY float64
		if ray.X() < 0 {
			stepX = -1
			sideX = (pos.X() - float64(ix)) * deltaX
		} else {
			stepX = 1
			sideX = (float64(ix) + 1 - pos.X()) * deltaX
		}
		if ray.Y() < 0 {
			stepY = -1
			sideY = (pos.Y() - float64(iy)) * deltaY
		} else {
			stepY = 1
			sideY = (float64(iy) + 1 - pos.Y()) * deltaY
		}

		var wall uint8
		ySide := false
		for wall == 0 {
			if sideX < sideY {
				sideX += deltaX
				ix += stepX
				ySide = false
			} else {
				sideY += deltaY
				iy += stepY
				ySide = true
			}
			wall = m.At(ix, iy)
		}

		color, ok := wallColors[wall]
		if !ok {
			color = unknownWallColor
		}
		if ySide {
			color[0] = uint8(uint32(color[0]) * 0xC0 >> 8)
			color[1] = uint8(uint32(color[1]) * 0xC0 >> 8)
			color[2] = uint8(uint32(color[2]) * 0xC0 >> 8)
		}

		var dperp float64
		if ySide {
			dperp = sideY - deltaY
		} else {
			dperp = sideX - deltaX
		}

		h := r.height
		if dperp > 0 {
			h = int(float64(r.height) / dperp)
		}
		y0 := ClampInt(r.height/2-h/2, 0, r.height-1)
		y1 := ClampInt(r.height/2+h/2, 0, r.height-1)

		for y := 0; y < y0; y++ {
			r.setPixel(x, y, ceilingColor)
		}
		for y := y0; y <= y1; y++ {
			r.setPixel(x, y, color)
		}
		for y := y1 + 1; y < r.height; y++ {
			r.setPixel(x, y, floorColor)
		}
	}
}

func (r *Renderer) setPixel(x, y int, c [4]uint8) {
	i := (y*r.width + x) * 4
	r.pixels[i+0] = c[0]
	r.pixels[i+1] = c[1]
	r.pixels[i+2] = c[2]
	r.pixels[i+3] = c[3]
}

// rayDelta is the distance along the ray between successive grid lines on
// one axis. Near-zero components get a large sentinel so the other axis
// always wins the DDA race.
func rayDelta(component float64) float64 {
	if math.Abs(component) < 1e-20 {
		return 1e30
	}
	return math.Abs(1 / component)
}
