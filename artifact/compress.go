package artifact

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies how a container body is compressed.
// Tags are stored in the container header; changing them breaks
// compatibility with existing files.
type CompressionTag uint8

const (
	// CompressionNone stores the record as is. The Huffman payload is
	// already entropy coded, so this is the default.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 applies LZ4 block compression to the record
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd applies zstd at the default level to the record
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseCompressionTag parses a compression tag from its name
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
	}
}

// zstd encoders and decoders are safe for concurrent use
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("artifact: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBodySize))
	if err != nil {
		panic("artifact: zstd decoder initialization failed: " + err.Error())
	}
}

// compressBody compresses data with tag. It returns errIncompressible
// when the result would not be smaller than the input.
func compressBody(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		destination := make([]byte, lz4.CompressBlockBound(len(data)))
		written, err := lz4.CompressBlock(data, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock returns 0 for incompressible input
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return nil, errIncompressible
		}
		return compressed, nil

	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedCompression, tag)
	}
}

// maxLZ4Ratio bounds how far one LZ4 block byte can expand
const maxLZ4Ratio = 255

// decompressBody reverses compressBody. The result must be exactly
// uncompressedSize bytes long.
func decompressBody(compressed []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("%w: body is %d bytes, header says %d",
				ErrInvalidContainer, len(compressed), uncompressedSize)
		}
		return compressed, nil

	case CompressionLZ4:
		if uncompressedSize > len(compressed)*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: %d lz4 bytes cannot expand to %d",
				ErrInvalidContainer, len(compressed), uncompressedSize)
		}
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4 decompress: %v", ErrInvalidContainer, err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, expected %d", ErrInvalidContainer, read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		destination, err := zstdDecoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd decompress: %v", ErrInvalidContainer, err)
		}
		if len(destination) != uncompressedSize {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, expected %d",
				ErrInvalidContainer, len(destination), uncompressedSize)
		}
		return destination, nil

	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedCompression, tag)
	}
}
