package artifact

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// Container layout (big-endian):
//
//	magic   "HGA"   3 bytes
//	version         1 byte
//	compression tag 1 byte
//	body length     4 bytes, length of the record before compression
//	body            CBOR record, compressed per tag
const (
	magic      = "HGA"
	Version    = 1
	headerSize = len(magic) + 1 + 1 + 4

	// maxBodySize bounds the declared record size before any allocation
	maxBodySize = 1 << 31
)

// Options controls how an artifact is marshaled
type Options struct {
	Compression CompressionTag
}

// Header is the fixed-size prefix of a container
type Header struct {
	Version     uint8
	Compression CompressionTag
	BodyLength  uint32
}

// Marshal serializes an artifact into a container
func Marshal(a *huffman.Artifact, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, a, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes an artifact into w.
// A body that does not shrink under the requested compression is stored uncompressed.
func Write(w io.Writer, a *huffman.Artifact, opts Options) error {
	rec, err := toRecord(a)
	if err != nil {
		return err
	}
	body, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encoding artifact record: %w", err)
	}

	tag := opts.Compression
	compressed, err := compressBody(body, tag)
	if err == errIncompressible {
		tag, compressed = CompressionNone, body
	} else if err != nil {
		return err
	}

	writer := newWriter(w)
	if err := writer.WriteBytes([]byte(magic)); err != nil {
		return err
	}
	if err := writer.WriteByte(Version); err != nil {
		return err
	}
	if err := writer.WriteByte(byte(tag)); err != nil {
		return err
	}
	if err := writer.WriteUint32(uint32(len(body))); err != nil {
		return err
	}
	return writer.WriteBytes(compressed)
}

// Unmarshal parses a container back into an artifact
func Unmarshal(data []byte) (*huffman.Artifact, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	body, err := decompressBody(data[headerSize:], header.Compression, int(header.BodyLength))
	if err != nil {
		return nil, err
	}
	rec, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	return rec.toArtifact()
}

// Read parses a container from r
func Read(r io.Reader) (*huffman.Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return Unmarshal(data)
}

// ParseHeader validates and returns the container header
func ParseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrInvalidContainer, len(data), headerSize)
	}

	reader := newReader(bytes.NewReader(data[:headerSize]))
	m := make([]byte, len(magic))
	if err := reader.ReadFull(m); err != nil {
		return Header{}, err
	}
	if string(m) != magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidContainer, m)
	}

	var h Header
	var err error
	if h.Version, err = reader.ReadByte(); err != nil {
		return Header{}, err
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	tag, err := reader.ReadByte()
	if err != nil {
		return Header{}, err
	}
	h.Compression = CompressionTag(tag)
	if h.BodyLength, err = reader.ReadUint32(); err != nil {
		return Header{}, err
	}
	if h.BodyLength >= maxBodySize {
		return Header{}, fmt.Errorf("%w: body length %d", ErrInvalidContainer, h.BodyLength)
	}
	return h, nil
}

// WriteFile marshals an artifact to path
func WriteFile(path string, a *huffman.Artifact, opts Options) (int, error) {
	data, err := Marshal(a, opts)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return len(data), nil
}

// ReadFile loads an artifact from path
func ReadFile(path string) (*huffman.Artifact, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}
	a, err := Unmarshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing artifact %s: %w", path, err)
	}
	return a, data, nil
}

// writer provides utilities for writing container fields
type writer struct {
	w   io.Writer
	buf [4]byte
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

// WriteByte writes a single byte
func (w *writer) WriteByte(b byte) error {
	w.buf[0] = b
	_, err := w.w.Write(w.buf[:1])
	return err
}

// WriteUint32 writes a 32-bit big-endian value
func (w *writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

// WriteBytes writes raw bytes
func (w *writer) WriteBytes(data []byte) error {
	_, err := w.w.Write(data)
	return err
}

// reader provides utilities for reading container fields
type reader struct {
	r   io.Reader
	buf [4]byte
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

// ReadByte reads a single byte
func (r *reader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	return r.buf[0], nil
}

// ReadUint32 reads a 32-bit big-endian value
func (r *reader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadFull fills p
func (r *reader) ReadFull(p []byte) error {
	if _, err := io.ReadFull(r.r, p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	return nil
}
