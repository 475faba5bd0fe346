package huffman

import (
	"bytes"
	"fmt"
)

// Grid is a single-channel 8-bit raster stored row-major
type Grid struct {
	Rows int
	Cols int
	Pix  []byte
}

// NewGrid allocates a zeroed grid of the given shape
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Pix: make([]byte, rows*cols)}, nil
}

// GridFromPixels wraps row-major pixel data. The slice is not copied.
func GridFromPixels(rows, cols int, pix []byte) (*Grid, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if len(pix) != rows*cols {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidDimensions, len(pix), rows, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Pix: pix}, nil
}

// GridFromRows builds a grid from nested rows of intensity values.
// All rows must have the same length and every value must fit in 8 bits.
func GridFromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{}, nil
	}

	cols := len(rows[0])
	g := &Grid{Rows: len(rows), Cols: cols, Pix: make([]byte, 0, len(rows)*cols)}
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, y, len(row), cols)
		}
		for x, v := range row {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: %d at (%d, %d)", ErrValueOutOfRange, v, y, x)
			}
			g.Pix = append(g.Pix, byte(v))
		}
	}
	return g, nil
}

// Len returns the number of pixels
func (g *Grid) Len() int {
	return g.Rows * g.Cols
}

// At returns the value at row y, column x
func (g *Grid) At(y, x int) byte {
	return g.Pix[y*g.Cols+x]
}

// Set stores v at row y, column x
func (g *Grid) Set(y, x int, v byte) {
	g.Pix[y*g.Cols+x] = v
}

// Equal reports whether both grids have the same shape and pixels
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.Rows == other.Rows && g.Cols == other.Cols && bytes.Equal(g.Pix, other.Pix)
}

// Rows2D returns a copy of the grid as nested rows
func (g *Grid) Rows2D() [][]int {
	out := make([][]int, g.Rows)
	for y := 0; y < g.Rows; y++ {
		row := make([]int, g.Cols)
		for x := 0; x < g.Cols; x++ {
			row[x] = int(g.At(y, x))
		}
		out[y] = row
	}
	return out
}
