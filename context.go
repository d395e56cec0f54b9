package doom

import (
	"image"
	"runtime"
	"sync"
)

// Context is an offscreen render target: a color attachment plus the
// rasterizer that runs a pipeline's shader stages over it. The blit
// pipeline writes no depth, so there is no depth buffer.
type Context struct {
	Width       int
	Height      int
	ColorBuffer *image.NRGBA
	locks       []sync.Mutex
}

func NewContext(width, height int) *Context {
	dc := &Context{}
	dc.Width = width
	dc.Height = height
	dc.ColorBuffer = image.NewNRGBA(image.Rect(0, 0, width, height))
	dc.locks = make([]sync.Mutex, 256)
	return dc
}

func (dc *Context) Image() image.Image {
	return dc.ColorBuffer
}

// ClearColorBufferWith uses fast memory copy to clear the buffer
func (dc *Context) ClearColorBufferWith(c Color) {
	nrgba := c.NRGBA()
	row := make([]uint8, dc.Width*4)
	for x := 0; x < dc.Width; x++ {
		i := x * 4
		row[i+0] = nrgba.R
		row[i+1] = nrgba.G
		row[i+2] = nrgba.B
		row[i+3] = nrgba.A
	}
	pix := dc.ColorBuffer.Pix
	stride := dc.ColorBuffer.Stride
	for y := 0; y < dc.Height; y++ {
		copy(pix[y*stride:], row)
	}
}

// Draw executes one draw call: the vertex stage once per index, triangle
// list assembly, then the fragment stage per covered pixel. The target is
// cleared to the pipeline clear color first.
func (dc *Context) Draw(p *RenderPipeline, b *BindGroup) error {
	dc.ClearColorBufferWith(p.ClearColor)

	outs := make([]VertexOutput, p.VertexCount)
	for i := range outs {
		v, err := p.Shader.Vertex(uint32(i))
		if err != nil {
			return err
		}
		outs[i] = v
	}

	triangles := len(outs) / 3
	var wg sync.WaitGroup
	wn := runtime.NumCPU()
	if wn > triangles {
		wn = triangles
	}
	wg.Add(wn)
	for wi := 0; wi < wn; wi++ {
		go func(wi int) {
			for i := wi; i < triangles; i += wn {
				dc.drawTriangle(outs[i*3], outs[i*3+1], outs[i*3+2], p.Shader, b)
			}
			wg.Done()
		}(wi)
	}
	wg.Wait()
	return nil
}

func edge(a, b, c Vector) float64 {
	return (b.X-c.X)*(a.Y-c.Y) - (b.Y-c.Y)*(a.X-c.X)
}

// screenSpace maps an NDC position to pixel coordinates. NDC +y is up,
// screen +y is down.
func (dc *Context) screenSpace(ndc Vector) Vector {
	x := (ndc.X + 1) / 2 * float64(dc.Width)
	y := (1 - ndc.Y) / 2 * float64(dc.Height)
	return Vector{x, y, ndc.Z}
}

func (dc *Context) drawTriangle(v0, v1, v2 VertexOutput, shader Shader, b *BindGroup) {
	ndc0 := v0.ClipPosition.DivScalar(v0.ClipPosition.W).Vector()
	ndc1 := v1.ClipPosition.DivScalar(v1.ClipPosition.W).Vector()
	ndc2 := v2.ClipPosition.DivScalar(v2.ClipPosition.W).Vector()

	// Back-face cull, counter-clockwise front faces.
	area := (ndc1.X-ndc0.X)*(ndc2.Y-ndc0.Y) - (ndc2.X-ndc0.X)*(ndc1.Y-ndc0.Y)
	if area <= 0 {
		return
	}

	s0 := dc.screenSpace(ndc0)
	s1 := dc.screenSpace(ndc1)
	s2 := dc.screenSpace(ndc2)
	dc.rasterize(v0, v1, v2, s0, s1, s2, shader, b)
}

func (dc *Context) rasterize(v0, v1, v2 VertexOutput, s0, s1, s2 Vector, shader Shader, b *BindGroup) {
	min := s0.Min(s1.Min(s2)).Floor()
	max := s0.Max(s1.Max(s2)).Ceil()

	x0 := ClampInt(int(min.X), 0, dc.Width-1)
	x1 := ClampInt(int(max.X), 0, dc.Width-1)
	y0 := ClampInt(int(min.Y), 0, dc.Height-1)
	y1 := ClampInt(int(max.Y), 0, dc.Height-1)

	p := Vector{float64(x0) + 0.5, float64(y0) + 0.5, 0}
	w00 := edge(s1, s2, p)
	w01 := edge(s2, s0, p)
	w02 := edge(s0, s1, p)
	a01 := s1.Y - s0.Y
	b01 := s0.X - s1.X
	a12 := s2.Y - s1.Y
	b12 := s1.X - s2.X
	a20 := s0.Y - s2.Y
	b20 := s2.X - s0.X

	ra := 1 / edge(s0, s1, s2)
	r0 := 1 / v0.ClipPosition.W
	r1 := 1 / v1.ClipPosition.W
	r2 := 1 / v2.ClipPosition.W

	pix := dc.ColorBuffer.Pix
	stride := dc.ColorBuffer.Stride

	for y := y0; y <= y1; y++ {
		w0 := w00
		w1 := w01
		w2 := w02
		for x := x0; x <= x1; x++ {
			b0 := w0 * ra
			b1 := w1 * ra
			b2 := w2 * ra

			if b0 >= 0 && b1 >= 0 && b2 >= 0 {
				// Perspective-correct interpolation; the blit quad has
				// w=1 everywhere so this reduces to affine weights.
				p0 := b0 * r0
				p1 := b1 * r1
				p2 := b2 * r2
				pw := 1 / (p0 + p1 + p2)
				v := VertexOutput{
					ClipPosition: VectorW{0, 0, 0, 1},
					TexCoords: v0.TexCoords.MulScalar(p0).
						Add(v1.TexCoords.MulScalar(p1)).
						Add(v2.TexCoords.MulScalar(p2)).
						MulScalar(pw),
				}

				colorVal := shader.Fragment(v, b)
				nrgba := colorVal.NRGBA()

				i := (y*stride + x*4)
				lock := &dc.locks[(x+y)&255]
				lock.Lock()
				pix[i+0] = nrgba.R
				pix[i+1] = nrgba.G
				pix[i+2] = nrgba.B
				pix[i+3] = nrgba.A
				lock.Unlock()
			}
			w0 += a12
			w1 += a20
			w2 += a01
		}
		w00 += b12
		w01 += b20
		w02 += b01
	}
}
