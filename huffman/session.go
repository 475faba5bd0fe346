package huffman

import "fmt"

// Artifact is the self-contained result of one compression run.
// Decoding needs nothing but the artifact.
type Artifact struct {
	Rows     int
	Cols     int
	CodeBook *CodeBook
	Bits     *BitSequence
}

// NewArtifact checks the parts of an artifact and bundles them
func NewArtifact(rows, cols int, cb *CodeBook, bits *BitSequence) (*Artifact, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if cb == nil || cb.Len() == 0 {
		return nil, ErrUntrainedTree
	}
	if bits == nil {
		return nil, fmt.Errorf("%w: no bit sequence", ErrTruncatedStream)
	}
	if err := checkCapacity(rows, cols, bits.Len()); err != nil {
		return nil, err
	}
	return &Artifact{Rows: rows, Cols: cols, CodeBook: cb, Bits: bits}, nil
}

// PixelCount returns rows*cols
func (a *Artifact) PixelCount() int {
	return a.Rows * a.Cols
}

// Stats returns the payload-only size accounting of the artifact
func (a *Artifact) Stats() Stats {
	return Stats{
		Pixels:         a.PixelCount(),
		OriginalBits:   int64(a.PixelCount()) * 8,
		CompressedBits: int64(a.Bits.Len()),
	}
}

// Decompress rebuilds the decoding trie from the codebook and decodes
func Decompress(a *Artifact) (*Grid, error) {
	if a == nil {
		return nil, ErrUntrainedTree
	}
	t, err := TreeFromCodeBook(a.CodeBook)
	if err != nil {
		return nil, err
	}
	return Decode(t, a.Bits, a.Rows, a.Cols)
}

// Option configures Compress
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers counts frequencies over n row bands in parallel
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Session holds everything one compression run produced.
// Nothing in it changes after Compress returns.
type Session struct {
	freq     *FrequencyTable
	tree     *Tree
	codebook *CodeBook
	artifact *Artifact
}

// Compress counts, builds the tree and codebook, and encodes g
func Compress(g *Grid, opts ...Option) (*Session, error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	freq, err := CountFrequenciesParallel(g, o.workers)
	if err != nil {
		return nil, err
	}
	tree, err := BuildTree(freq)
	if err != nil {
		return nil, err
	}
	cb, err := GenerateCodeBook(tree)
	if err != nil {
		return nil, err
	}
	bits, err := Encode(g, cb)
	if err != nil {
		return nil, err
	}
	artifact, err := NewArtifact(g.Rows, g.Cols, cb, bits)
	if err != nil {
		return nil, err
	}

	return &Session{freq: freq, tree: tree, codebook: cb, artifact: artifact}, nil
}

// Frequencies returns the frequency table
func (s *Session) Frequencies() *FrequencyTable { return s.freq }

// Tree returns the Huffman tree
func (s *Session) Tree() *Tree { return s.tree }

// CodeBook returns the codebook
func (s *Session) CodeBook() *CodeBook { return s.codebook }

// Artifact returns the compressed artifact
func (s *Session) Artifact() *Artifact { return s.artifact }

// Stats returns the payload-only size accounting
func (s *Session) Stats() Stats { return s.artifact.Stats() }

// Decompress decodes the session's artifact with the session's own tree
func (s *Session) Decompress() (*Grid, error) {
	return Decode(s.tree, s.artifact.Bits, s.artifact.Rows, s.artifact.Cols)
}
