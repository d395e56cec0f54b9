package doom

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// The blit shader as it would be handed to a GPU pipeline compiler. The Go
// shader stages in shader.go implement the same semantics; the source is
// validated at pipeline creation the way a host's shader compiler would.
//
//go:embed shader.wgsl
var shaderSource string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// ShaderSource returns the WGSL source of the blit shader pair.
func ShaderSource() string {
	return shaderSource
}

// BindGroup holds the resources a draw call binds for the fragment stage:
// a 2D texture at binding 0 and a sampler at binding 1. Both are owned by
// the host; the shader only reads them.
type BindGroup struct {
	Texture Texture
	Sampler *Sampler
}

// RenderPipeline fixes the draw state for the full-screen blit: the shader
// pair, a 6-vertex triangle-list draw, no depth buffer, and the clear color
// applied before the pass.
type RenderPipeline struct {
	Shader      Shader
	VertexCount uint32
	ClearColor  Color
}

// NewRenderPipeline validates the WGSL source and returns the blit pipeline.
// Validation failures here are the compile-time errors a GPU host would
// raise at pipeline creation: malformed source, missing entry points, or a
// binding layout that does not match texture-plus-sampler at group 0.
func NewRenderPipeline() (*RenderPipeline, error) {
	if err := validateShader(shaderSource); err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	return &RenderPipeline{
		Shader:      &ScreenShader{},
		VertexCount: QuadVertexCount,
		ClearColor:  Color{0.14, 0, 0, 1},
	}, nil
}

func validateShader(source string) error {
	module, err := compileShader(source)
	if err != nil {
		return err
	}
	if err := checkEntryPoints(module); err != nil {
		return err
	}
	return checkBindings(module)
}

func compileShader(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse shader: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("lower shader: %w", err)
	}
	validationErrors, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validate shader: %w", err)
	}
	if len(validationErrors) > 0 {
		return nil, fmt.Errorf("validate shader: %w", &validationErrors[0])
	}
	return module, nil
}

func checkEntryPoints(module *ir.Module) error {
	stages := map[string]ir.ShaderStage{}
	for _, ep := range module.EntryPoints {
		stages[ep.Name] = ep.Stage
	}
	if stage, ok := stages[vertexEntryPoint]; !ok || stage != ir.StageVertex {
		return fmt.Errorf("shader has no vertex entry point %q", vertexEntryPoint)
	}
	if stage, ok := stages[fragmentEntryPoint]; !ok || stage != ir.StageFragment {
		return fmt.Errorf("shader has no fragment entry point %q", fragmentEntryPoint)
	}
	return nil
}

// checkBindings verifies group 0 carries a sampled 2D texture at binding 0
// and a non-comparison sampler at binding 1, matching the bind group layout
// the host constructs.
func checkBindings(module *ir.Module) error {
	var haveTexture, haveSampler bool
	for _, gv := range module.GlobalVariables {
		if gv.Binding == nil || gv.Binding.Group != 0 {
			continue
		}
		inner := module.Types[gv.Type].Inner
		switch gv.Binding.Binding {
		case 0:
			img, ok := inner.(ir.ImageType)
			if !ok || img.Dim != ir.Dim2D || img.Class != ir.ImageClassSampled || img.Multisampled {
				return fmt.Errorf("binding 0 of %q is not a sampled 2D texture", gv.Name)
			}
			haveTexture = true
		case 1:
			smp, ok := inner.(ir.SamplerType)
			if !ok || smp.Comparison {
				return fmt.Errorf("binding 1 of %q is not a filtering sampler", gv.Name)
			}
			haveSampler = true
		}
	}
	if !haveTexture {
		return fmt.Errorf("shader binds no texture at group 0 binding 0")
	}
	if !haveSampler {
		return fmt.Errorf("shader binds no sampler at group 0 binding 1")
	}
	return nil
}
