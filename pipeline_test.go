package doom

import (
	"strings"
	"testing"
)

func TestNewRenderPipeline(t *testing.T) {
	p, err := NewRenderPipeline()
	if err != nil {
		t.Fatalf("NewRenderPipeline failed: %v", err)
	}
	if p.VertexCount != QuadVertexCount {
		t.Errorf("VertexCount = %d, want %d", p.VertexCount, QuadVertexCount)
	}
	if _, ok := p.Shader.(*ScreenShader); !ok {
		t.Errorf("Shader = %T, want *ScreenShader", p.Shader)
	}
	if p.ClearColor != (Color{0.14, 0, 0, 1}) {
		t.Errorf("ClearColor = %+v", p.ClearColor)
	}
}

func TestShaderSourceEmbedded(t *testing.T) {
	src := ShaderSource()
	if src == "" {
		t.Fatal("shader source is empty")
	}
	for _, want := range []string{"vs_main", "fs_main", "@group(0) @binding(0)", "@group(0) @binding(1)", "textureSample"} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestValidateShader(t *testing.T) {
	if err := validateShader(shaderSource); err != nil {
		t.Fatalf("embedded shader failed validation: %v", err)
	}
}

func TestValidateShaderRejects(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{
			name:   "not wgsl",
			source: "this is not a shader",
		},
		{
			name: "missing fragment entry point",
			source: `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`,
		},
		{
			name: "wrong entry point names",
			source: `
@vertex
fn vertex(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}

@fragment
fn fragment() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`,
		},
		{
			name: "sampler and texture bindings swapped",
			source: `
struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) tex_coords: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = vec4<f32>(0.0, 0.0, 0.0, 1.0);
    out.tex_coords = vec2<f32>(0.0, 0.0);
    return out;
}

@group(0) @binding(1)
var t_screen: texture_2d<f32>;
@group(0) @binding(0)
var s_screen: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return textureSample(t_screen, s_screen, in.tex_coords);
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateShader(tt.source); err == nil {
				t.Error("validateShader succeeded, want error")
			}
		})
	}
}
