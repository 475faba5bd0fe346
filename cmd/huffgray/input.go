package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cocosip/go-huffman-codec/artifact"
	"github.com/cocosip/go-huffman-codec/dicomio"
	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/imageio"
)

func isDICOM(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dcm", ".dicom":
		return true
	}
	return false
}

func isArtifact(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".hga")
}

// loadGrid reads a raster image or one frame of a DICOM file
func (env *environment) loadGrid(path string) (*huffman.Grid, error) {
	if !isDICOM(path) {
		return imageio.Load(path)
	}

	img, err := dicomio.Load(path)
	if err != nil {
		return nil, err
	}
	if env.frame < 0 || env.frame >= len(img.Frames) {
		return nil, fmt.Errorf("%w: frame %d out of range, %s has %d frames", errUsage, env.frame, path, len(img.Frames))
	}
	env.logger.Debug("loaded DICOM",
		"path", path,
		"transfer_syntax", img.TransferSyntax,
		"bits_stored", img.BitsStored,
		"frames", len(img.Frames),
	)
	return img.Frames[env.frame], nil
}

// loadArtifact reads and decodes an artifact file, returning the raw bytes too
func (env *environment) loadArtifact(path string) (*huffman.Artifact, []byte, error) {
	a, data, err := artifact.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	env.logger.Debug("read artifact", "path", path, "bytes", len(data), "rows", a.Rows, "cols", a.Cols)
	return a, data, nil
}
