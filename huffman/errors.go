package huffman

import "errors"

// Huffman coding errors
var (
	ErrEmptyInput        = errors.New("empty input grid")
	ErrUntrainedTree     = errors.New("Huffman tree has not been built")
	ErrUnknownSymbol     = errors.New("pixel value has no codeword")
	ErrTruncatedStream   = errors.New("bit stream truncated")
	ErrMalformedTree     = errors.New("malformed Huffman tree")
	ErrShapeMismatch     = errors.New("decoded value count does not match grid shape")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrValueOutOfRange   = errors.New("intensity value out of range [0, 255]")
	ErrInvalidFrequency  = errors.New("invalid frequency count")
	ErrCodeTooLong       = errors.New("codeword exceeds maximum length")
)
