package grayhuff

import (
	"fmt"
	"log/slog"

	"github.com/cocosip/go-huffman-codec/artifact"
	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/cocosip/go-huffman-codec/huffman"
)

const (
	// Name is the registry name of the codec
	Name = "huffman-gray8"

	// UID identifies the container format the codec produces
	UID = "hga.v1"
)

var _ codec.Codec = (*Codec)(nil)

// Codec compresses single-component 8-bit rasters into HGA containers
type Codec struct {
	defaults *Options
	logger   *slog.Logger
}

// CodecOption configures a Codec
type CodecOption func(*Codec)

// WithLogger sets the logger used for per-image diagnostics.
// Without it the codec logs to slog.Default at call time.
func WithLogger(logger *slog.Logger) CodecOption {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithDefaults sets the options used when EncodeParams carries none
func WithDefaults(opts *Options) CodecOption {
	return func(c *Codec) {
		c.defaults = opts
	}
}

// New creates a Huffman grayscale codec
func New(opts ...CodecOption) *Codec {
	c := &Codec{defaults: DefaultOptions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the codec name
func (c *Codec) Name() string {
	return Name
}

// UID returns the container format identifier
func (c *Codec) UID() string {
	return UID
}

// Encode compresses one raster and returns the serialized container
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if err := codec.CheckParams(params, 1, 8); err != nil {
		return nil, err
	}
	opts, err := c.options(params.Options)
	if err != nil {
		return nil, err
	}

	g, err := huffman.GridFromPixels(params.Height, params.Width, params.PixelData)
	if err != nil {
		return nil, err
	}
	_, data, err := c.Compress(g, opts)
	return data, err
}

// Compress runs a full compression session on g and serializes it.
// The session is returned for reporting.
func (c *Codec) Compress(g *huffman.Grid, opts *Options) (*huffman.Session, []byte, error) {
	if opts == nil {
		opts = c.defaults
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	session, err := huffman.Compress(g, huffman.WithWorkers(opts.workers()))
	if err != nil {
		return nil, nil, err
	}
	data, err := artifact.Marshal(session.Artifact(), artifact.Options{Compression: opts.Compression})
	if err != nil {
		return nil, nil, err
	}

	stats := session.Stats()
	c.log().Debug("compressed grid",
		"rows", g.Rows,
		"cols", g.Cols,
		"distinct", session.Frequencies().Len(),
		"payload_bits", stats.CompressedBits,
		"artifact_bytes", len(data),
		"ratio", stats.Ratio(),
	)
	return session, data, nil
}

// Decode parses a container and reconstructs the raster
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	a, err := artifact.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	g, err := huffman.Decompress(a)
	if err != nil {
		return nil, err
	}

	c.log().Debug("decompressed grid", "rows", g.Rows, "cols", g.Cols, "artifact_bytes", len(data))
	return &codec.DecodeResult{
		PixelData:  g.Pix,
		Width:      g.Cols,
		Height:     g.Rows,
		Components: 1,
		BitDepth:   8,
	}, nil
}

func (c *Codec) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

func (c *Codec) options(o codec.Options) (*Options, error) {
	switch opts := o.(type) {
	case nil:
		return c.defaults, nil
	case *Options:
		return opts, nil
	case *codec.BaseOptions:
		merged := *c.defaults
		merged.BaseOptions = *opts
		return &merged, nil
	default:
		return nil, fmt.Errorf("%w: options of type %T", codec.ErrInvalidParameter, o)
	}
}

func init() {
	codec.Register(New())
}
