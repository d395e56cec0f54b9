package doom

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Ensure decoders are present
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

type Texture interface {
	Sample(u, v float64) Color
	BilinearSample(u, v float64) Color
}

type ImageTexture struct {
	Width  int
	Height int
	Image  image.Image
}

func NewImageTexture(im image.Image) *ImageTexture {
	return &ImageTexture{
		Width:  im.Bounds().Dx(),
		Height: im.Bounds().Dy(),
		Image:  im,
	}
}

// NewImageTextureFit rescales the image to the given dimensions before
// wrapping it.
func NewImageTextureFit(im image.Image, width, height int) *ImageTexture {
	if im.Bounds().Dx() != width || im.Bounds().Dy() != height {
		im = resize.Resize(uint(width), uint(height), im, resize.Bilinear)
	}
	return NewImageTexture(im)
}

func LoadTexture(path string) (*ImageTexture, error) {
	im, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewImageTexture(im), nil
}

func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	return im, err
}

func TexFromBytes(data []byte) (*ImageTexture, error) {
	im, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewImageTexture(im), nil
}

// Sample returns the nearest texel. Coordinates are expected in [0,1];
// wrapping happens in the sampler.
func (t *ImageTexture) Sample(u, v float64) Color {
	x := ClampInt(int(u*float64(t.Width)), 0, t.Width-1)
	y := ClampInt(int(v*float64(t.Height)), 0, t.Height-1)
	return MakeColor(t.Image.At(x, y))
}

func (t *ImageTexture) BilinearSample(u, v float64) Color {
	return bilinear(t.texel, t.Width, t.Height, u, v)
}

func (t *ImageTexture) texel(x, y int) Color {
	return MakeColor(t.Image.At(x, y))
}

// ScreenTexture is a mutable RGBA8 texture the host rewrites between draw
// calls, the software analogue of an on-device texture fed by
// queue.write_texture.
type ScreenTexture struct {
	Width  int
	Height int
	pix    []uint8
}

func NewScreenTexture(width, height int) *ScreenTexture {
	return &ScreenTexture{
		Width:  width,
		Height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Write replaces the texture contents with tightly packed RGBA8 rows.
func (t *ScreenTexture) Write(pixels []uint8) error {
	if len(pixels) != len(t.pix) {
		return fmt.Errorf("texture write of %d bytes, want %d", len(pixels), len(t.pix))
	}
	copy(t.pix, pixels)
	return nil
}

func (t *ScreenTexture) Sample(u, v float64) Color {
	x := ClampInt(int(u*float64(t.Width)), 0, t.Width-1)
	y := ClampInt(int(v*float64(t.Height)), 0, t.Height-1)
	return t.texel(x, y)
}

func (t *ScreenTexture) BilinearSample(u, v float64) Color {
	return bilinear(t.texel, t.Width, t.Height, u, v)
}

func (t *ScreenTexture) texel(x, y int) Color {
	i := (y*t.Width + x) * 4
	const d = 255
	return Color{
		float64(t.pix[i+0]) / d,
		float64(t.pix[i+1]) / d,
		float64(t.pix[i+2]) / d,
		float64(t.pix[i+3]) / d,
	}
}

// bilinear blends the four texels around the continuous texel coordinate
// (u*w-0.5, v*h-0.5).
func bilinear(texel func(x, y int) Color, w, h int, u, v float64) Color {
	px := u*float64(w) - 0.5
	py := v*float64(h) - 0.5
	x0 := int(px)
	y0 := int(py)
	if px < 0 {
		x0--
	}
	if py < 0 {
		y0--
	}
	fx := px - float64(x0)
	fy := py - float64(y0)
	x1 := ClampInt(x0+1, 0, w-1)
	y1 := ClampInt(y0+1, 0, h-1)
	x0 = ClampInt(x0, 0, w-1)
	y0 = ClampInt(y0, 0, h-1)
	top := texel(x0, y0).Lerp(texel(x1, y0), fx)
	bottom := texel(x0, y1).Lerp(texel(x1, y1), fx)
	return top.Lerp(bottom, fy)
}

type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

// Sampler resolves filtering and wrap behavior outside the shader; the
// fragment stage only passes coordinates through it.
type Sampler struct {
	Filter Filter
	WrapU  Wrap
	WrapV  Wrap
}

// NewSampler returns a sampler with the default configuration: nearest
// filtering, clamp to edge.
func NewSampler() *Sampler {
	return &Sampler{}
}

func (s *Sampler) Sample(t Texture, u, v float64) Color {
	u = wrapCoord(s.WrapU, u)
	v = wrapCoord(s.WrapV, v)
	if s.Filter == FilterLinear {
		return t.BilinearSample(u, v)
	}
	return t.Sample(u, v)
}

func wrapCoord(w Wrap, x float64) float64 {
	if w == WrapRepeat {
		if x == 1 {
			return 1
		}
		return Fract(x)
	}
	return Clamp(x, 0, 1)
}
