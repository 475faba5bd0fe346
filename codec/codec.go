package codec

// Codec is the common interface for grid codecs
type Codec interface {
	// Encode encodes raw pixel data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes data produced by Encode
	Decode(data []byte) (*DecodeResult, error)

	// UID returns the unique identifier of the encoded format
	UID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Raw pixel data, row-major
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (1=grayscale)
	BitDepth   int     // Bits per sample
	Options    Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded pixel data
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
	BitDepth   int    // Bits per sample
}

// BaseOptions provides options shared by all codecs
type BaseOptions struct {
	// Workers bounds the goroutines used for frequency counting.
	// 0 lets the codec decide.
	Workers int
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.Workers < 0 {
		return ErrInvalidParameter
	}
	return nil
}

// CheckParams verifies that params describe a well-formed raster with the
// given component count and bit depth
func CheckParams(params EncodeParams, components, bitDepth int) error {
	if params.Width <= 0 || params.Height <= 0 {
		return ErrInvalidParameter
	}
	if params.Components != components || params.BitDepth != bitDepth {
		return ErrUnsupportedFormat
	}
	if len(params.PixelData) != params.Width*params.Height*components*((bitDepth+7)/8) {
		return ErrInvalidParameter
	}
	if params.Options != nil {
		return params.Options.Validate()
	}
	return nil
}
