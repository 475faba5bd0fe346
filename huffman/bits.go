package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// BitSequence is an immutable sequence of bits packed MSB-first into bytes.
// Bits past Len in the final byte are padding and always zero.
type BitSequence struct {
	data []byte
	n    int
}

// NewBitSequence wraps packed bytes whose final byte holds trailing valid
// bits (1-8). An empty sequence has no bytes and trailing 0. The bytes are copied.
func NewBitSequence(data []byte, trailing uint8) (*BitSequence, error) {
	if len(data) == 0 {
		if trailing != 0 {
			return nil, fmt.Errorf("%w: %d trailing bits with no payload", ErrTruncatedStream, trailing)
		}
		return &BitSequence{}, nil
	}
	if trailing < 1 || trailing > 8 {
		return nil, fmt.Errorf("%w: trailing bit count %d not in 1-8", ErrTruncatedStream, trailing)
	}

	packed := make([]byte, len(data))
	copy(packed, data)
	// Clear padding so equal sequences compare equal byte for byte
	packed[len(packed)-1] &= byte(0xFF << (8 - trailing))
	return &BitSequence{data: packed, n: (len(data)-1)*8 + int(trailing)}, nil
}

// Len returns the number of bits
func (s *BitSequence) Len() int {
	return s.n
}

// At returns bit i (0 or 1)
func (s *BitSequence) At(i int) uint64 {
	return uint64(s.data[i>>3]>>(7-uint(i&7))) & 1
}

// Bytes returns a copy of the packed bytes
func (s *BitSequence) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// ByteLen returns the packed size in bytes
func (s *BitSequence) ByteLen() int {
	return len(s.data)
}

// TrailingBits returns the number of valid bits in the final byte
func (s *BitSequence) TrailingBits() uint8 {
	if s.n == 0 {
		return 0
	}
	if r := s.n % 8; r != 0 {
		return uint8(r)
	}
	return 8
}

// Equal reports whether both sequences hold the same bits
func (s *BitSequence) Equal(other *BitSequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.n == other.n && bytes.Equal(s.data, other.data)
}

// String renders the bits as '0'/'1' characters
func (s *BitSequence) String() string {
	var sb bytes.Buffer
	sb.Grow(s.n)
	for i := 0; i < s.n; i++ {
		sb.WriteByte('0' + byte(s.At(i)))
	}
	return sb.String()
}

// BitWriter packs codewords into a BitSequence
type BitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   int
}

// NewBitWriter creates an empty BitWriter
func NewBitWriter() *BitWriter {
	bw := &BitWriter{}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

// WriteCode appends a codeword
func (bw *BitWriter) WriteCode(c Code) error {
	if err := bw.w.WriteBits(c.Bits, uint8(c.Len)); err != nil {
		return err
	}
	bw.n += c.Len
	return nil
}

// WriteBit appends a single bit
func (bw *BitWriter) WriteBit(bit uint64) error {
	if err := bw.w.WriteBool(bit == 1); err != nil {
		return err
	}
	bw.n++
	return nil
}

// Len returns the number of bits written so far
func (bw *BitWriter) Len() int {
	return bw.n
}

// Finish flushes the pending bits, zero padded, and returns the sequence.
// The writer must not be used afterwards.
func (bw *BitWriter) Finish() (*BitSequence, error) {
	if err := bw.w.Close(); err != nil {
		return nil, err
	}
	return &BitSequence{data: bw.buf.Bytes(), n: bw.n}, nil
}

// BitReader reads a BitSequence one bit at a time
type BitReader struct {
	r         *bitio.Reader
	remaining int
}

// NewReader returns a reader positioned at the first bit
func (s *BitSequence) NewReader() *BitReader {
	return &BitReader{r: bitio.NewReader(bytes.NewReader(s.data)), remaining: s.n}
}

// ReadBit returns the next bit, or io.EOF once every bit has been read
func (br *BitReader) ReadBit() (uint64, error) {
	if br.remaining == 0 {
		return 0, io.EOF
	}
	b, err := br.r.ReadBool()
	if err != nil {
		return 0, err
	}
	br.remaining--
	if b {
		return 1, nil
	}
	return 0, nil
}

// Remaining returns the number of unread bits
func (br *BitReader) Remaining() int {
	return br.remaining
}
