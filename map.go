package doom

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Map is a grid of wall cells. Zero is empty space, any other value is a
// wall id the renderer maps to a color. Cells outside the grid read as
// solid so rays cannot escape an unwalled map.
type Map struct {
	Width  int
	Height int
	cells  []uint8
}

func NewMap(width, height int, cells []uint8) (*Map, error) {
	if len(cells) != width*height {
		return nil, fmt.Errorf("map of %dx%d needs %d cells, got %d", width, height, width*height, len(cells))
	}
	return &Map{Width: width, Height: height, cells: cells}, nil
}

func (m *Map) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 1
	}
	return m.cells[y*m.Width+x]
}

// DefaultMap returns the built-in 15x15 level: a walled room with two
// pillars of wall type 2 and a short wall of type 3.
func DefaultMap() *Map {
	cells := []uint8{
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 2, 0, 0, 3, 3, 3, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	}
	m, _ := NewMap(15, 15, cells)
	return m
}

func LoadMap(path string) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadMapFromReader(file)
}

func LoadMapFromBytes(b []byte) (*Map, error) {
	return LoadMapFromReader(bytes.NewReader(b))
}

// LoadMapFromReader parses an ASCII level: one row per line, one digit per
// cell, '#' starting a comment line. All rows must be the same width.
func LoadMapFromReader(r io.Reader) (*Map, error) {
	var cells []uint8
	width := 0
	height := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		row := make([]uint8, 0, len(line))
		for _, c := range line {
			if c == ' ' || c == '\t' {
				continue
			}
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("map row %d: invalid cell %q", height+1, c)
			}
			row = append(row, uint8(c-'0'))
		}
		if width == 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("map row %d has %d cells, want %d", height+1, len(row), width)
		}
		cells = append(cells, row...)
		height++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if height == 0 {
		return nil, fmt.Errorf("map is empty")
	}
	return NewMap(width, height, cells)
}
