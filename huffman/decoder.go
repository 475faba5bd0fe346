package huffman

import (
	"errors"
	"fmt"
	"io"
)

// Decode walks t from the root for each bit of bits: 0 moves left, 1 moves
// right, and reaching a leaf emits its value and returns to the root.
// The whole sequence must decode to exactly rows*cols values.
func Decode(t *Tree, bits *BitSequence, rows, cols int) (*Grid, error) {
	if t == nil || len(t.nodes) == 0 {
		return nil, ErrUntrainedTree
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if bits == nil {
		return nil, fmt.Errorf("%w: no bit sequence", ErrTruncatedStream)
	}
	if err := checkCapacity(rows, cols, bits.Len()); err != nil {
		return nil, err
	}

	expected := rows * cols
	out := make([]byte, 0, expected)
	br := bits.NewReader()

	if t.nodes[t.root].Leaf {
		if err := decodeSingleLeaf(t.nodes[t.root].Value, br, &out, expected); err != nil {
			return nil, err
		}
	} else {
		if err := t.decodeWalk(br, &out, expected); err != nil {
			return nil, err
		}
	}

	if len(out) < expected {
		return nil, fmt.Errorf("%w: decoded %d of %d values", ErrTruncatedStream, len(out), expected)
	}
	if extra := br.Remaining(); extra > 0 {
		return nil, fmt.Errorf("%w: %d bits left after %dx%d values", ErrShapeMismatch, extra, rows, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Pix: out}, nil
}

// checkCapacity rejects dimensions the stream cannot hold. Every codeword
// is at least one bit, so a valid stream has no fewer bits than pixels.
func checkCapacity(rows, cols, bitLen int) error {
	if cols > bitLen || rows > bitLen/cols {
		return fmt.Errorf("%w: %d bits cannot hold %dx%d values", ErrTruncatedStream, bitLen, rows, cols)
	}
	return nil
}

// decodeWalk stops once expected values are produced
func (t *Tree) decodeWalk(br *BitReader, out *[]byte, expected int) error {
	cur := t.root
	consumed := 0
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, io.EOF) {
			if cur != t.root {
				return fmt.Errorf("%w: stream ends %d bits into a codeword", ErrTruncatedStream, consumed)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}

		next := t.child(cur, bit)
		if next == NoChild {
			return fmt.Errorf("%w: node %d has no child for bit %d", ErrMalformedTree, cur, bit)
		}
		consumed++

		if t.nodes[next].Leaf {
			*out = append(*out, t.nodes[next].Value)
			if len(*out) == expected {
				return nil
			}
			cur = t.root
			consumed = 0
		} else {
			cur = next
		}
	}
}

// decodeSingleLeaf handles a tree that is one leaf: its codeword is "0"
func decodeSingleLeaf(value byte, br *BitReader, out *[]byte, expected int) error {
	for {
		bit, err := br.ReadBit()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}
		if bit != 0 {
			return fmt.Errorf("%w: single-value tree has no child for bit 1", ErrMalformedTree)
		}
		*out = append(*out, value)
		if len(*out) == expected {
			return nil
		}
	}
}
