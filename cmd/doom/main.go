// Command doom renders raycaster frames offscreen and writes them as PNG
// files, rotating the camera a little between frames.
//
// Usage:
//
//	doom [options]
//
// Examples:
//
//	doom -frames 1 -o frame.png        # single frame
//	doom -frames 120 -o out/frame.png  # out/frame_000.png .. _119.png
//	doom -map level.txt                # custom ASCII level
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	doom "github.com/Quantumplation/rust-doom"
)

var (
	width   = flag.Int("width", 800, "frame width in pixels")
	height  = flag.Int("height", 600, "frame height in pixels")
	frames  = flag.Int("frames", 1, "number of frames to render")
	output  = flag.String("o", "frame.png", "output file (or name pattern for multiple frames)")
	mapPath = flag.String("map", "", "ASCII level file (default: built-in level)")
	angle   = flag.Float64("angle", 0.007, "camera rotation per frame in radians")
	logFPS  = flag.Bool("fps", false, "log frame rate")
)

func main() {
	flag.Parse()

	level := doom.DefaultMap()
	if *mapPath != "" {
		var err error
		level, err = doom.LoadMap(*mapPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading map: %v\n", err)
			os.Exit(1)
		}
	}

	graphics, err := doom.NewGraphics(*width, *height, doom.NewCamera(), level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	graphics.LogFPS = *logFPS

	for i := 0; i < *frames; i++ {
		path := framePath(*output, i, *frames)
		if err := graphics.SaveFrame(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		graphics.Camera().Rotate(*angle)
	}
	log.Printf("rendered %d frame(s)", *frames)
}

// framePath numbers the output name when more than one frame is requested:
// "out/frame.png" becomes "out/frame_007.png".
func framePath(pattern string, i, total int) string {
	if total <= 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	base := strings.TrimSuffix(pattern, ext)
	return fmt.Sprintf("%s_%03d%s", base, i, ext)
}
