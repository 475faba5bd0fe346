package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/imageio"
)

func runDecompress(env *environment, args []string) error {
	if err := expectArgs(args, 2); err != nil {
		return err
	}
	input, output := args[0], args[1]

	a, _, err := env.loadArtifact(input)
	if err != nil {
		return err
	}
	g, err := huffman.Decompress(a)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}
	if err := imageio.Save(output, g); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "wrote %s (%dx%d)\n", output, g.Cols, g.Rows)

	if env.config.PreviewEnabled() {
		preview, err := imageio.Preview(g, env.config.Preview.MaxWidth, env.config.Preview.MaxHeight)
		if err != nil {
			return err
		}
		path := previewPath(output)
		if err := imageio.Save(path, preview); err != nil {
			return err
		}
		fmt.Fprintf(env.stdout, "wrote %s (%dx%d)\n", path, preview.Cols, preview.Rows)
	}
	return nil
}

// previewPath inserts "_preview" before the extension of path
func previewPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_preview" + ext
}

func runCompare(env *environment, args []string) error {
	if err := expectArgs(args, 3); err != nil {
		return err
	}
	original, input, output := args[0], args[1], args[2]

	before, err := env.loadGrid(original)
	if err != nil {
		return err
	}
	a, _, err := env.loadArtifact(input)
	if err != nil {
		return err
	}
	after, err := huffman.Decompress(a)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", input, err)
	}

	if err := imageio.SaveImage(output, imageio.SideBySide(before, after)); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "wrote %s\n", output)

	if !before.Equal(after) {
		return fmt.Errorf("%s does not reproduce %s: %d differing pixels", input, original, countDiff(before, after))
	}
	fmt.Fprintf(env.stdout, "lossless: all %d pixels match\n", before.Len())
	return nil
}

// countDiff counts differing pixels, treating a shape mismatch as all pixels
func countDiff(a, b *huffman.Grid) int {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return max(a.Len(), b.Len())
	}
	n := 0
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			n++
		}
	}
	return n
}
