package grayhuff

import (
	"fmt"
	"runtime"

	"github.com/cocosip/go-huffman-codec/artifact"
	"github.com/cocosip/go-huffman-codec/codec"
)

// Options configures encoding with the Huffman grayscale codec
type Options struct {
	codec.BaseOptions

	// Compression is the envelope applied to the serialized artifact
	Compression artifact.CompressionTag
}

// DefaultOptions returns options with an uncompressed envelope and one
// counting worker per CPU
func DefaultOptions() *Options {
	return &Options{}
}

// Validate checks if the options are valid
func (o *Options) Validate() error {
	if err := o.BaseOptions.Validate(); err != nil {
		return fmt.Errorf("workers %d: %w", o.Workers, err)
	}
	switch o.Compression {
	case artifact.CompressionNone, artifact.CompressionLZ4, artifact.CompressionZstd:
		return nil
	default:
		return fmt.Errorf("%w: %v", artifact.ErrUnsupportedCompression, o.Compression)
	}
}

func (o *Options) workers() int {
	if o.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}
