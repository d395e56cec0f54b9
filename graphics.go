package doom

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"time"
)

// Graphics owns everything a frame needs: the raycaster, the screen texture
// it writes, and the blit pipeline that draws the texture across the
// offscreen target.
type Graphics struct {
	context  *Context
	pipeline *RenderPipeline
	bind     *BindGroup
	screen   *ScreenTexture
	renderer *Renderer
	camera   *Camera
	level    *Map

	// LogFPS prints the frame rate after each frame.
	LogFPS    bool
	lastFrame time.Time
}

func NewGraphics(width, height int, camera *Camera, level *Map) (*Graphics, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("graphics size %dx%d must be positive", width, height)
	}
	pipeline, err := NewRenderPipeline()
	if err != nil {
		return nil, fmt.Errorf("graphics setup: %w", err)
	}
	screen := NewScreenTexture(width, height)
	return &Graphics{
		context:   NewContext(width, height),
		pipeline:  pipeline,
		bind:      &BindGroup{Texture: screen, Sampler: NewSampler()},
		screen:    screen,
		renderer:  NewRenderer(width, height),
		camera:    camera,
		level:     level,
		lastFrame: time.Now(),
	}, nil
}

func (g *Graphics) Camera() *Camera {
	return g.camera
}

// RenderFrame renders the raycaster view, uploads it to the screen texture
// and blits it through the pipeline. The returned image is the context's
// color buffer and stays valid until the next frame.
func (g *Graphics) RenderFrame() (image.Image, error) {
	g.renderer.Render(g.camera, g.level)
	if err := g.screen.Write(g.renderer.Pixels()); err != nil {
		return nil, err
	}
	if err := g.context.Draw(g.pipeline, g.bind); err != nil {
		return nil, err
	}

	if g.LogFPS {
		duration := time.Since(g.lastFrame)
		log.Printf("FPS: %f", float64(time.Second)/float64(duration))
	}
	g.lastFrame = time.Now()
	return g.context.Image(), nil
}

// Resize recreates the render target, screen texture and renderer at the
// new dimensions. Zero or negative dimensions are ignored.
func (g *Graphics) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.context = NewContext(width, height)
	g.screen = NewScreenTexture(width, height)
	g.renderer = NewRenderer(width, height)
	g.bind.Texture = g.screen
}

// WriteFrame renders one frame and encodes it as PNG.
func (g *Graphics) WriteFrame(w io.Writer) error {
	im, err := g.RenderFrame()
	if err != nil {
		return err
	}
	return png.Encode(w, im)
}

// SaveFrame renders one frame into a PNG file.
func (g *Graphics) SaveFrame(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return g.WriteFrame(file)
}
