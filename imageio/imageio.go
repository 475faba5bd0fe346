// Package imageio converts between raster image files and huffman grids.
//
// Color images are reduced to 8-bit luma (ITU-R BT.601 weights) on load.
// Grids are written back as single-channel images.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// comparisonGap is the white gutter between the two halves of SideBySide
const comparisonGap = 8

// Load opens an image file, applies its EXIF orientation and converts it to a grid
func Load(path string) (*huffman.Grid, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	return FromImage(img)
}

// Decode reads an image from r and converts it to a grid
func Decode(r io.Reader) (*huffman.Grid, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return FromImage(img)
}

// FromImage converts any image to a grid of 8-bit intensities
func FromImage(img image.Image) (*huffman.Grid, error) {
	bounds := img.Bounds()
	g, err := huffman.NewGrid(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, err
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		gift.New(gift.Grayscale()).Draw(gray, img)
	}

	gb := gray.Bounds()
	for y := 0; y < g.Rows; y++ {
		offset := gray.PixOffset(gb.Min.X, gb.Min.Y+y)
		copy(g.Pix[y*g.Cols:(y+1)*g.Cols], gray.Pix[offset:offset+g.Cols])
	}
	return g, nil
}

// ToImage wraps the grid pixels in an image.Gray without copying
func ToImage(g *huffman.Grid) *image.Gray {
	return &image.Gray{
		Pix:    g.Pix,
		Stride: g.Cols,
		Rect:   image.Rect(0, 0, g.Cols, g.Rows),
	}
}

// Save writes the grid to path. The format follows the file extension.
func Save(path string, g *huffman.Grid) error {
	return SaveImage(path, ToImage(g))
}

// SaveImage writes any image to path, choosing the format from the extension
func SaveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving image %s: %w", path, err)
	}
	return nil
}

// Preview returns a copy of g scaled down to fit within maxWidth x maxHeight,
// keeping the aspect ratio. Grids that already fit are returned unscaled.
func Preview(g *huffman.Grid, maxWidth, maxHeight uint) (*huffman.Grid, error) {
	if uint(g.Cols) <= maxWidth && uint(g.Rows) <= maxHeight {
		return huffman.GridFromPixels(g.Rows, g.Cols, append([]byte(nil), g.Pix...))
	}
	return FromImage(resize.Thumbnail(maxWidth, maxHeight, ToImage(g), resize.Lanczos3))
}

// SideBySide renders before and after next to each other on a white canvas
func SideBySide(before, after *huffman.Grid) *image.NRGBA {
	width := before.Cols + comparisonGap + after.Cols
	height := max(before.Rows, after.Rows)

	canvas := imaging.New(width, height, color.White)
	canvas = imaging.Paste(canvas, ToImage(before), image.Pt(0, 0))
	return imaging.Paste(canvas, ToImage(after), image.Pt(before.Cols+comparisonGap, 0))
}
