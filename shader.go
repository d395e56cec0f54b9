package doom

import "fmt"

// QuadVertexCount is the number of vertices a draw call must request to
// cover the viewport: two triangles sharing the top-left/bottom-right
// diagonal.
const QuadVertexCount = 6

// quadCorners maps vertex index to clip-space corner. Triangle one is
// top-left, bottom-left, bottom-right; triangle two is top-left,
// bottom-right, top-right.
var quadCorners = [QuadVertexCount]struct{ x, y float64 }{
	{-1, 1},
	{-1, -1},
	{1, -1},
	{-1, 1},
	{1, -1},
	{1, 1},
}

// VertexOutput carries a vertex stage result across the interpolator to the
// fragment stage. ClipPosition always has Z=0 and W=1; TexCoords lies in
// [0,1]x[0,1].
type VertexOutput struct {
	ClipPosition VectorW
	TexCoords    Vector
}

// Shader pairs a vertex stage with a fragment stage. Both stages are pure:
// the vertex stage maps a vertex index to a clip-space position and texture
// coordinate, the fragment stage maps an interpolated VertexOutput and the
// draw call's bound resources to an output color.
type Shader interface {
	Vertex(index uint32) (VertexOutput, error)
	Fragment(v VertexOutput, b *BindGroup) Color
}

// QuadVertex returns the full-screen quad vertex for the given index. The
// index must be below QuadVertexCount; anything else means the draw call
// requested the wrong vertex count.
func QuadVertex(index uint32) (VertexOutput, error) {
	if index >= QuadVertexCount {
		return VertexOutput{}, fmt.Errorf("vertex index %d out of range [0,%d)", index, QuadVertexCount)
	}
	c := quadCorners[index]
	return VertexOutput{
		ClipPosition: VectorW{c.x, c.y, 0, 1},
		TexCoords:    Vector{(c.x + 1) / 2, (1 - c.y) / 2, 0},
	}, nil
}

// ScreenShader blits a bound texture across the viewport. The fragment stage
// returns the sampled color unmodified.
type ScreenShader struct{}

func (s *ScreenShader) Vertex(index uint32) (VertexOutput, error) {
	return QuadVertex(index)
}

func (s *ScreenShader) Fragment(v VertexOutput, b *BindGroup) Color {
	return b.Sampler.Sample(b.Texture, v.TexCoords.X, v.TexCoords.Y)
}

// SolidShader fills the viewport with a constant color, ignoring the bound
// texture.
type SolidShader struct {
	Color Color
}

func (s *SolidShader) Vertex(index uint32) (VertexOutput, error) {
	return QuadVertex(index)
}

func (s *SolidShader) Fragment(v VertexOutput, b *BindGroup) Color {
	return s.Color
}
